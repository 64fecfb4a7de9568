package scan

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/renapsi/fluigscan/internal/oauth1"
	"github.com/renapsi/fluigscan/pkg/handlers"
)

// Handler provides the HTTP endpoints of the scan service.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a scan HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "scan"),
	}
}

// Handler returns the HTTP handler bound to this system.
func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// DocumentNumber accepts a JSON string or number; callers send both.
type DocumentNumber string

func (n *DocumentNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = DocumentNumber(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = DocumentNumber(num.String())
	return nil
}

type scanRequest struct {
	Servidor          string         `json:"servidor"`
	NumDocumento      DocumentNumber `json:"numDocumento"`
	ConsumerKey       string         `json:"consumerKey"`
	ConsumerSecret    string         `json:"consumerSecret"`
	AccessToken       string         `json:"accessToken"`
	AccessTokenSecret string         `json:"accessTokenSecret"`
}

func (r scanRequest) toRequest() Request {
	return Request{
		Server:         r.Servidor,
		DocumentNumber: string(r.NumDocumento),
		Credentials: oauth1.Credentials{
			ConsumerKey:    r.ConsumerKey,
			ConsumerSecret: r.ConsumerSecret,
			Token:          r.AccessToken,
			TokenSecret:    r.AccessTokenSecret,
		},
	}
}

type scanResponse struct {
	MD5   string `json:"MD5"`
	CHAPA string `json:"CHAPA,omitempty"`
	CPF   string `json:"CPF,omitempty"`
	MES   string `json:"MES,omitempty"`
	ANO   string `json:"ANO,omitempty"`
}

func toResponse(result *Result) scanResponse {
	resp := scanResponse{MD5: result.MD5}
	if result.Fields != nil {
		resp.CHAPA = result.Fields.CHAPA
		resp.CPF = result.Fields.CPF
		resp.MES = result.Fields.MES
		resp.ANO = result.Fields.ANO
	}
	return resp
}

// Hello handles GET / with the legacy greeting.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "Hello world RENAPSI"})
}

// Scan handles POST /buscardocumento. Hard pipeline failures respond 500
// with the ERROR envelope; existing integrations match on that status even
// for validation failures, so bad requests do not get a 400.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingField)
		return
	}

	result, err := h.sys.Scan(r.Context(), req.toRequest())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResponse(result))
}
