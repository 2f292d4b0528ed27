package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/edh-companion/internal/api/response"
	"github.com/mtgkit/edh-companion/internal/catalog"
	"github.com/mtgkit/edh-companion/internal/commander"
)

// PairingHandler handles pairing-validation API requests.
type PairingHandler struct {
	catalog catalog.Catalog
}

// NewPairingHandler creates a new PairingHandler.
func NewPairingHandler(cat catalog.Catalog) *PairingHandler {
	return &PairingHandler{catalog: cat}
}

// GetPairing validates a commander pairing and returns the combined identity.
// Unknown names are 404s; a known but illegal pairing is a 400 with the
// specific reason.
func (h *PairingHandler) GetPairing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	partnerName := chi.URLParam(r, "partner")
	if name == "" || partnerName == "" {
		response.BadRequest(w, errors.New("both commander names are required"))
		return
	}

	primary, ok := h.catalog.Lookup(name)
	if !ok {
		response.NotFound(w, fmt.Errorf("unknown commander %q", name))
		return
	}
	secondary, ok := h.catalog.Lookup(partnerName)
	if !ok {
		response.NotFound(w, fmt.Errorf("unknown commander %q", partnerName))
		return
	}

	mode := commander.ResolveMode(primary, secondary)
	if mode == commander.ModeNone {
		response.BadRequest(w, &commander.PairingError{
			Mode:      mode,
			Primary:   primary.Label(),
			Secondary: secondary.Label(),
			Reason:    "no pairing mechanic applies to these commanders",
		})
		return
	}

	combined, err := commander.BuildCombined(primary, secondary, mode)
	if err != nil {
		var pairingErr *commander.PairingError
		if errors.As(err, &pairingErr) {
			response.BadRequest(w, pairingErr)
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, combined)
}

// ListCommanders returns all commander names known to the catalog.
func (h *PairingHandler) ListCommanders(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.catalog.Names())
}
