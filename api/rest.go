package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/mech-backend/db/sqlc"
	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/combat"
	mc "github.com/saeidalz13/mech-backend/models/connection"
	"github.com/saeidalz13/mech-backend/models/mech"
)

type RestHandler struct {
	catalog  *mech.Catalog
	dbm      *sqlc.DbManager
	bouts    combat.BoutManager
	sessions mc.SessionManager
	ipnet    pqtype.Inet
}

func NewRestHandler(catalog *mech.Catalog, dbm *sqlc.DbManager, bouts combat.BoutManager, sessions mc.SessionManager) *RestHandler {
	return &RestHandler{
		catalog:  catalog,
		dbm:      dbm,
		bouts:    bouts,
		sessions: sessions,
		ipnet:    pqtype.Inet{IPNet: serverIpNet(), Valid: true},
	}
}

func (h *RestHandler) Mount(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/analytics", h.handleAnalytics)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/parts", h.handleParts)
		r.Get("/modules", h.handleModules)
	})

	r.Route("/mechs", func(r chi.Router) {
		r.Post("/validate", h.handleValidateMech)
		r.Post("/", h.handleSaveMech)
		r.Get("/", h.handleListMechs)
		r.Get("/{id}", h.handleGetMech)
		r.Delete("/{id}", h.handleDeleteMech)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, mc.NewRespErr(err.Error(), mc.Reason(err)))
}

// statusOf maps domain errors onto http statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, cerr.ErrMechNotExist):
		return http.StatusNotFound
	case errors.Is(err, cerr.ErrPartNotFound),
		errors.Is(err, cerr.ErrModuleNotFound),
		errors.Is(err, cerr.ErrInvalidPlacement),
		errors.Is(err, cerr.ErrNoCockpit),
		errors.Is(err, cerr.ErrOverBudget):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *RestHandler) hangarReady(w http.ResponseWriter) bool {
	if h.dbm == nil || h.dbm.Hangar == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHangar)
		return false
	}
	return true
}

func (h *RestHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"sessions": h.sessions.Count(),
		"bouts":    h.bouts.Count(),
		"hangar":   h.dbm != nil,
	})
}

func (h *RestHandler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if h.dbm == nil || h.dbm.Analytics == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHangar)
		return
	}
	count, err := h.dbm.Analytics.GetBoutsStarted(r.Context(), h.ipnet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bouts_started": count})
}

type partView struct {
	*mech.PartDefinition
	Layout string `json:"layout"`
}

type moduleView struct {
	*mech.ModuleDefinition
	Layout       string            `json:"layout"`
	Capabilities []mech.Capability `json:"capabilities"`
}

var partTypes = map[string]mech.PartType{
	"head":  mech.PartHead,
	"chest": mech.PartChest,
	"arm":   mech.PartArm,
	"leg":   mech.PartLeg,
}

// GET /catalog/parts?type=arm
func (h *RestHandler) handleParts(w http.ResponseWriter, r *http.Request) {
	wanted := r.URL.Query().Get("type")
	out := make(map[string][]partView, len(partTypes))
	for name, t := range partTypes {
		if wanted != "" && wanted != name {
			continue
		}
		parts := h.catalog.Parts(t)
		views := make([]partView, len(parts))
		for i, p := range parts {
			views[i] = partView{PartDefinition: p, Layout: mech.FormatLayout(p.Cells)}
		}
		out[name] = views
	}
	if wanted != "" && len(out) == 0 {
		writeError(w, http.StatusBadRequest, cerr.ErrDefinitionKey(wanted))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RestHandler) handleModules(w http.ResponseWriter, r *http.Request) {
	modules := h.catalog.Modules()
	views := make([]moduleView, len(modules))
	for i, m := range modules {
		views[i] = moduleView{ModuleDefinition: m, Layout: mech.FormatLayout(m.Cells), Capabilities: m.Capabilities()}
	}
	writeJSON(w, http.StatusOK, views)
}

type saveMechReq struct {
	Name string         `json:"name"`
	Mech mech.SavedMech `json:"mech"`
}

type mechResp struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Mech      mech.SavedMech `json:"mech"`
	Summary   mech.Summary   `json:"summary"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// assemble rebuilds the mech and runs the finish-building gate.
func (h *RestHandler) assemble(saved mech.SavedMech) (*mech.Mech, error) {
	m, err := h.catalog.LoadMech(saved)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(h.catalog.Costs()); err != nil {
		return m, err
	}
	return m, nil
}

func (h *RestHandler) handleValidateMech(w http.ResponseWriter, r *http.Request) {
	var saved mech.SavedMech
	if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := h.assemble(saved)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, mechResp{Mech: m.Save(), Summary: m.Summary(h.catalog.Costs())})
}

func (h *RestHandler) handleSaveMech(w http.ResponseWriter, r *http.Request) {
	if !h.hangarReady(w) {
		return
	}

	var req saveMechReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := h.assemble(req.Mech)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()
	row, err := h.dbm.Hangar.SaveMech(ctx, req.Name, m.Save())
	if err != nil {
		log.Error().Err(err).Msg("save mech")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, mechResp{
		ID:        row.ID,
		Name:      row.Name,
		Mech:      m.Save(),
		Summary:   m.Summary(h.catalog.Costs()),
		CreatedAt: &row.CreatedAt,
	})
}

func (h *RestHandler) rowResp(row sqlc.Mech) (mechResp, error) {
	saved, err := sqlc.SavedMechOf(row)
	if err != nil {
		return mechResp{}, err
	}
	resp := mechResp{ID: row.ID, Name: row.Name, Mech: saved, CreatedAt: &row.CreatedAt}
	// a stored mech may no longer fit a changed catalog; still return it
	if m, err := h.catalog.LoadMech(saved); err == nil {
		resp.Summary = m.Summary(h.catalog.Costs())
	}
	return resp, nil
}

func (h *RestHandler) handleGetMech(w http.ResponseWriter, r *http.Request) {
	if !h.hangarReady(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	row, err := h.dbm.Hangar.GetMech(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	resp, err := h.rowResp(row)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func queryInt32(r *http.Request, key string) int32 {
	n, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

func (h *RestHandler) handleListMechs(w http.ResponseWriter, r *http.Request) {
	if !h.hangarReady(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	rows, err := h.dbm.Hangar.ListMechs(ctx, queryInt32(r, "limit"), queryInt32(r, "offset"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]mechResp, 0, len(rows))
	for _, row := range rows {
		resp, err := h.rowResp(row)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RestHandler) handleDeleteMech(w http.ResponseWriter, r *http.Request) {
	if !h.hangarReady(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := h.dbm.Hangar.DeleteMech(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
