package middleware

import (
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error" description:"Error message"`
}

// HandleError writes err's message as the error body.
func HandleError(resp *restful.Response, err error, status int) {
	WriteError(resp, status, err.Error())
}

func WriteError(resp *restful.Response, status int, message string) {
	if err := resp.WriteHeaderAndEntity(status, ErrorResponse{Error: message}); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to write error response")
	}
}
