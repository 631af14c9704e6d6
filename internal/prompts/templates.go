package prompts

const evaluateTemplate = `
You are an interview coach for a {{.Role}} developer.

Question:
{{.Question}}

User Answer:
{{.UserAnswer}}

Respond ONLY in strict JSON like this:
{
  "feedback": "short feedback string",
  "improvedAnswer": "correct or improved answer",
  "explanation": "detailed step-by-step explanation of the correct concept",
  "score": 0,
  "topic": "string"
}
`

const questionTemplate = `
You are an interview coach.

Generate ONE {{.Difficulty}} level interview question for a {{.Role}} developer.
{{if .Topic}}The question MUST be strictly from the topic: {{.Topic}}.{{end}}

Rules:
- Return ONLY strict JSON

JSON format:
{
  "question": "string",
  "topic": "string"
}
`

const mcqQuestionTemplate = `
You are an interview coach.

Generate ONE {{.Difficulty}} level multiple-choice interview question for a {{.Role}} developer.
{{if .Topic}}The question MUST be strictly from the topic: {{.Topic}}.{{end}}
Rules:
- Return ONLY strict JSON
- Exactly 4 options
- One correct answer
- The correct answer MUST be one of the options
- Do NOT return A/B/C/D
- Return the actual correct option text
- ALSO provide a explanation of why this option is correct

JSON format:
{
  "question": "string",
  "options": ["opt1", "opt2", "opt3", "opt4"],
  "correctAnswer": "opt2",
  "topic": "string",
  "explanation": "brief 2-5 sentence explanation"
}
`

const explainTemplate = `
You are an interview coach.

Explain the topic "{{.Topic}}" for a {{.Role}} developer.

Give:
- Simple explanation
- Key points (bullet format)
- One small example if applicable
- 2 interview tips

Respond ONLY in plain text, well formatted.
`

const quizTopicTemplate = `
You are an interview coach.

Generate {{quizSize}} multiple-choice interview questions for a {{.Role}} developer.
All questions MUST be strictly from the topic: {{.Topic}}.

Rules:
- Return ONLY strict JSON
- Exactly 4 options per question
- correctIndex is the zero-based index (0-3) of the correct option
- Do NOT repeat questions

JSON format:
{
  "questions": [
    {
      "question": "string",
      "options": ["opt1", "opt2", "opt3", "opt4"],
      "correctIndex": 0,
      "topic": "string"
    }
  ]
}
`

const explainWrongTemplate = `
You are an interview coach for a {{.Role}} developer.

The candidate answered a multiple-choice question incorrectly.

Question:
{{.Question}}

Options:
{{range .Options}}- {{.}}
{{end}}
Correct answer: {{.CorrectAnswer}}
Candidate's answer: {{.UserAnswer}}

Explain briefly why the candidate's answer is wrong and why the correct answer is right.
Keep it encouraging and under 150 words.

Respond ONLY in plain text.
`

const followUpTemplate = `
You are an interview coach for a {{.Role}} developer.

Interview question:
{{.Question}}

What was discussed so far:
{{.Context}}

The candidate asks:
{{.UserQuery}}

Answer the candidate's question clearly and concisely, staying on the interview topic.

Respond ONLY in plain text.
`

const mockInterviewStartTemplate = `
You are an interviewer running a mock interview.

Generate {{.Count}} {{.Difficulty}} level multiple-choice interview questions for a {{.Role}} developer.
Cover different topics relevant to the role.

Rules:
- Return ONLY strict JSON
- Exactly 4 options per question
- correctIndex is the zero-based index (0-3) of the correct option
- Provide a brief explanation of why the correct option is right

JSON format:
{
  "questions": [
    {
      "question": "string",
      "options": ["opt1", "opt2", "opt3", "opt4"],
      "correctIndex": 0,
      "topic": "string",
      "explanation": "brief 2-5 sentence explanation"
    }
  ]
}
`

const mockInterviewEvaluateTemplate = `
You are an interviewer evaluating a mock interview for a {{.Role}} developer.

Interview transcript:
{{range $i, $a := .Answers}}
Q{{inc $i}}: {{$a.Question}}
A{{inc $i}}: {{$a.Answer}}
{{end}}
Score the whole interview from 0 to 10.
List the candidate's strengths and the areas they should improve.

Respond ONLY in strict JSON like this:
{
  "score": 0,
  "strengths": ["string"],
  "weakAreas": ["string"],
  "feedback": "overall feedback string"
}
`
