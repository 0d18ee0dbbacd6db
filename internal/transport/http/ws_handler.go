package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// WSHandler plays one round per websocket connection.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.QuizService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Choice string `json:"choice"`
}

type joinedPayload struct {
	SessionID string `json:"sessionId"`
	Player    string `json:"player"`
	Total     int    `json:"total"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives a quiz session
// with the connected client. Messages are handled strictly in order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("name")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	session, err := h.service.Prepare(r.Context(), player)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: describe(err)}})
		return
	}
	log := h.log.With().Str("session", session.ID()).Logger()

	if err := conn.WriteJSON(outboundMessage[joinedPayload]{Type: "joined", Payload: joinedPayload{
		SessionID: session.ID(),
		Player:    session.Player(),
		Total:     session.Total(),
	}}); err != nil {
		log.Error().Err(err).Msg("ws write error")
		return
	}
	if err := h.sendQuestion(conn, session); err != nil {
		log.Error().Err(err).Msg("ws write error")
		return
	}

	for !session.Complete() {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			log.Info().Err(err).Int("answered", session.Answered()).Msg("ws client left before the end of the round")
			return
		}

		var out any
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				break
			}
			res, err := session.SubmitAnswer(payload.Choice)
			if err != nil {
				out = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				break
			}
			out = outboundMessage[domain.AnswerResult]{Type: "answerResult", Payload: res}
		default:
			out = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}

		if err := conn.WriteJSON(out); err != nil {
			log.Error().Err(err).Msg("ws write error")
			return
		}
		if session.Complete() {
			break
		}
		if err := h.sendQuestion(conn, session); err != nil {
			log.Error().Err(err).Msg("ws write error")
			return
		}
	}

	result, err := session.Finish(context.WithoutCancel(r.Context()))
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	if err := conn.WriteJSON(outboundMessage[domain.SessionResult]{Type: "result", Payload: result}); err != nil {
		log.Error().Err(err).Msg("ws write error")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quiz completed"))
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, session *app.Session) error {
	prompt, err := session.CurrentPrompt()
	if err != nil {
		return err
	}
	return conn.WriteJSON(outboundMessage[domain.Prompt]{Type: "question", Payload: prompt})
}

// describe renders round start failures for players.
func describe(err error) string {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe):
		return "Failed to fetch questions: " + fe.Cause
	case errors.Is(err, domain.ErrEmptyQuiz):
		return "No questions available for this quiz"
	}
	return err.Error()
}
