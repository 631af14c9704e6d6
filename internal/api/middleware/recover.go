package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
			WriteError(resp, http.StatusInternalServerError, "internal server error")
		}
	}()

	chain.ProcessFilter(req, resp)
}
