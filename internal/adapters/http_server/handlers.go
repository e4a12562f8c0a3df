package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wearapp_hotels/internal/app"
	"wearapp_hotels/internal/domain"
)

const (
	defaultLimit   = 10
	maxLimit       = 100
	maxUploadBytes = 32 << 20
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/health", h.health)
	s.mux.Route("/api/v1/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
		r.Delete("/{id}", h.deleteHotel)
	})
}

// ---- response shapes ----

type hotelResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Price       float64 `json:"price"`
	Image       *string `json:"image"`
}

type hotelListResponse struct {
	Hotels       []hotelResponse `json:"hotels"`
	TotalItems   int64           `json:"totalItems"`
	CurrentPage  int             `json:"currentPage"`
	ItemsPerPage int             `json:"itemsPerPage"`
	TotalPages   int             `json:"totalPages"`
}

// toResponse rewrites the stored relative image path into an absolute URL
// built from the incoming request's scheme and host.
func toResponse(r *http.Request, h domain.Hotel) hotelResponse {
	out := hotelResponse{
		ID:          h.ID,
		Title:       h.Title,
		Description: h.Description,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		Price:       h.Price,
	}
	if h.Image != nil {
		u := requestScheme(r) + "://" + r.Host + *h.Image
		out.Image = &u
	}
	return out
}

func requestScheme(r *http.Request) string {
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		return p
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// ---- writers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps service failures onto the 404/500 split; storage detail
// never reaches the response body.
func writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	log.Error().Err(err).Str("op", op).Msg("request failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "error "+op)
}

// ---- request parsing ----

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// hotelForm validates the write-request form fields. It accepts multipart and
// urlencoded bodies; all five fields are required on create and update alike.
func hotelForm(r *http.Request) (app.HotelInput, string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return app.HotelInput{}, "malformed form body", false
	}

	var missing []string
	field := func(name string) string {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			missing = append(missing, name)
		}
		return v
	}
	in := app.HotelInput{
		Title:       field("title"),
		Description: field("description"),
	}
	lat, lon, price := field("latitude"), field("longitude"), field("price")
	if len(missing) > 0 {
		return app.HotelInput{}, "missing required field: " + strings.Join(missing, ", "), false
	}

	var err error
	if in.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return app.HotelInput{}, "latitude must be a number", false
	}
	if in.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
		return app.HotelInput{}, "longitude must be a number", false
	}
	if in.Price, err = strconv.ParseFloat(price, 64); err != nil || in.Price < 0 {
		return app.HotelInput{}, "price must be a non-negative number", false
	}
	return in, "", true
}

// imageUpload returns the optional "image" file, or nil when none was sent.
// The caller owns closing the returned closer.
func imageUpload(r *http.Request) (*app.Upload, func(), error) {
	f, hdr, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return &app.Upload{Filename: hdr.Filename, Data: f}, func() { f.Close() }, nil
}

func parseListQuery(r *http.Request) (domain.ListQuery, string, bool) {
	q := domain.ListQuery{Limit: defaultLimit, Page: 1}
	qs := r.URL.Query()

	if t := qs.Get("title"); t != "" {
		q.Title = &t
	}
	for name, dst := range map[string]**float64{"minPrice": &q.MinPrice, "maxPrice": &q.MaxPrice} {
		if v := qs.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return domain.ListQuery{}, name + " must be a number", false
			}
			*dst = &f
		}
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxLimit {
			return domain.ListQuery{}, "limit must be an integer between 1 and 100", false
		}
		q.Limit = n
	}
	if v := qs.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return domain.ListQuery{}, "page must be a positive integer", false
		}
		q.Page = n
	}
	return q, "", true
}

// ---- handlers ----

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "UP",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q, detail, ok := parseListQuery(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", detail)
		return
	}
	page, err := h.Q.ListHotels(r.Context(), q)
	if err != nil {
		writeError(w, "retrieving hotels", err)
		return
	}
	out := hotelListResponse{
		Hotels:       make([]hotelResponse, 0, len(page.Items)),
		TotalItems:   page.TotalItems,
		CurrentPage:  page.Page,
		ItemsPerPage: page.PerPage,
		TotalPages:   page.TotalPages,
	}
	for _, item := range page.Items {
		out.Hotels = append(out.Hotels, toResponse(r, item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, "retrieving hotel", err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(r, hotel))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	in, detail, ok := hotelForm(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", detail)
		return
	}
	img, closeImg, err := imageUpload(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", "malformed image upload")
		return
	}
	defer closeImg()

	hotel, err := h.C.CreateHotel(r.Context(), in, img)
	if err != nil {
		writeError(w, "creating hotel", err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(r, hotel))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	in, detail, ok := hotelForm(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", detail)
		return
	}
	img, closeImg, err := imageUpload(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", "malformed image upload")
		return
	}
	defer closeImg()

	hotel, err := h.C.UpdateHotel(r.Context(), id, in, img)
	if err != nil {
		writeError(w, "updating hotel", err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(r, hotel))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.C.DeleteHotel(r.Context(), id); err != nil {
		writeError(w, "deleting hotel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
