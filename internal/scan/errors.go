package scan

import (
	"errors"
	"fmt"

	"github.com/renapsi/fluigscan/internal/fluig"
)

// Hard errors surface to the caller as a 500 with the ERROR envelope.
// The messages are the legacy Portuguese texts existing integrations
// match on.
var (
	ErrMissingField      = errors.New("Corpo da solicitação inválido, faltou alguma informação")
	ErrUnsupportedFormat = errors.New("Formato de arquivo não aceito")
	ErrCorruptDocument   = errors.New("arquivo corrompido")
)

// mapFetchError converts fetcher failures into the user-facing taxonomy:
// empty body is a corrupt document, a remote status becomes the legacy
// Fluig API message, anything else is a transport failure with the same
// prefix.
func mapFetchError(err error) error {
	var statusErr *fluig.StatusError
	switch {
	case errors.Is(err, fluig.ErrEmptyBody):
		return ErrCorruptDocument
	case errors.As(err, &statusErr):
		return fmt.Errorf("Erro ao buscar arquivo na API do Fluig: %s", statusErr.Status)
	default:
		return fmt.Errorf("Erro ao buscar arquivo na API do Fluig: %v", err)
	}
}
