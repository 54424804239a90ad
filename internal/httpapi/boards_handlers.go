package httpapi

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/store"
)

type BoardsHandler struct {
	DB     *sql.DB
	Log    *logging.Logger
	Config func() config.Config
}

// List returns one board per enabled company with its stored job count.
func (h BoardsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.Config()
	out := []domain.Board{}

	add := func(source string, src config.Source) error {
		if !src.Enabled {
			return nil
		}
		counts, err := store.CountJobsByCompany(r.Context(), h.DB, source)
		if err != nil {
			return err
		}
		for _, co := range src.Companies {
			name := co.Name
			if name == "" {
				name = co.Slug
			}
			n := counts[strings.ToLower(name)]
			out = append(out, domain.Board{
				Label:       name,
				Value:       strings.ToLower(source) + ":" + co.Slug,
				Description: fmt.Sprintf("%s · %d jobs", source, n),
			})
		}
		return nil
	}

	if err := add("Greenhouse", cfg.Sources.Greenhouse); err != nil {
		WriteInternal(w, r, h.Log, "boards_failed", err)
		return
	}
	if err := add("Lever", cfg.Sources.Lever); err != nil {
		WriteInternal(w, r, h.Log, "boards_failed", err)
		return
	}
	if err := add("SmartRecruiters", cfg.Sources.SmartRecruiters); err != nil {
		WriteInternal(w, r, h.Log, "boards_failed", err)
		return
	}
	writeJSON(w, out)
}
