package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wemint/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger
}

// Routes serves the shopper-facing catalog: active products only.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.listActive)
	r.Get("/{id}", s.getActive)

	return r
}

// AdminRoutes serves the operator dashboard over the full catalog.
func (s *Server) AdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/stats", s.stats)

	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", s.listAll)
		pr.Post("/", s.create)
		pr.Get("/{id}", s.getAny)
		pr.Patch("/{id}", s.update)
		pr.Post("/{id}/toggle", s.toggle)
		pr.Delete("/{id}", s.delete)
	})

	return r
}

// productReq is the dashboard form. Every field is optional; price accepts
// numbers or numeric strings.
type productReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       any       `json:"price"`
	Image       *string   `json:"image"`
	Badge       *string   `json:"badge"`
	Status      *string   `json:"status"`
	Features    *[]string `json:"features"`
	License     *string   `json:"license"`
}

func (req productReq) toNew() NewProduct {
	np := NewProduct{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Price:       CoercePrice(req.Price),
		Image:       deref(req.Image),
		Badge:       deref(req.Badge),
		Status:      StatusDraft,
		License:     deref(req.License),
	}
	if req.Status != nil {
		np.Status = CoerceStatus(*req.Status)
	}
	if req.Features != nil {
		np.Features = CleanFeatures(*req.Features)
	}
	return np
}

func (req productReq) toUpdate() ProductUpdate {
	u := ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Badge:       req.Badge,
		License:     req.License,
	}
	if req.Price != nil {
		p := CoercePrice(req.Price)
		u.Price = &p
	}
	if req.Status != nil {
		st := CoerceStatus(*req.Status)
		u.Status = &st
	}
	if req.Features != nil {
		f := CleanFeatures(*req.Features)
		u.Features = &f
	}
	return u
}

func (s *Server) listActive(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.Active(r.Context())
	if err != nil {
		s.serverError(w, r, "list active products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getActive(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !p.Active() {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getAny(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.lookup(w, r); ok {
		kit.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.Create(r.Context(), req.toNew())
	if err != nil {
		s.serverError(w, r, "create product failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req productReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.Update(r.Context(), id, req.toUpdate())
	s.writeProduct(w, r, p, err)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	p, err := s.Store.ToggleStatus(r.Context(), id)
	s.writeProduct(w, r, p, err)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(chi.URLParam(r, "id"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.serverError(w, r, "delete product failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Store.Stats(r.Context())
	if err != nil {
		s.serverError(w, r, "stats failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (Product, bool) {
	id, ok := s.pathID(w, r)
	if !ok {
		return Product{}, false
	}

	p, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeProduct(w, r, p, err)
		return Product{}, false
	}
	return p, true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, ok := ParseID(raw)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": raw})
	}
	return id, ok
}

func (s *Server) writeProduct(w http.ResponseWriter, r *http.Request, p Product, err error) {
	switch {
	case err == nil:
		kit.WriteJSON(w, http.StatusOK, p)
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
	default:
		s.serverError(w, r, "product operation failed", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err), zap.String("id", chi.URLParam(r, "id")))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
