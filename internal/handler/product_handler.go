package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/service"

	"github.com/rs/zerolog"
)

const (
	// maxMultipartMemory is the part of a multipart body kept in memory; the rest spills to disk.
	maxMultipartMemory = 32 << 20
	imagesField        = "images"
)

// ProductResponse is returned after a catalogue change.
type ProductResponse struct {
	Success bool           `json:"success"`
	Name    string         `json:"name"`
	Product *model.Product `json:"product,omitempty"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /allproducts. limit and offset are optional; without a
// limit every product is returned.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 0
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// NewCollections handles GET /newcollections.
func (h *ProductHandler) NewCollections(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.NewCollections(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve new collections", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// PopularInWomen handles GET /popularinwomen.
func (h *ProductHandler) PopularInWomen(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.PopularInWomen(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve popular products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Related handles POST /relatedproducts.
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	var req model.RelatedProductsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	products, err := h.service.Related(r.Context(), req.Category)
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve related products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Upload handles POST /upload with up to ten files in the images field.
func (h *ProductHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeServiceError(w, r, model.ErrNoImagesUploaded, "", h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, closeAll, err := openUploads(r.MultipartForm.File[imagesField])
	defer closeAll()
	if err != nil {
		writeServiceError(w, r, err, "failed to read uploaded files", h.logger)
		return
	}

	images, err := h.service.UploadImages(r.Context(), uploads)
	if err != nil {
		writeServiceError(w, r, err, "failed to store images", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.UploadResponse{Success: true, Images: images})
}

// AddProduct handles POST /addproduct. It accepts a multipart form with the
// product fields and image files, or a JSON product body.
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var (
		req     model.ProductRequest
		uploads []service.ImageUpload
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid multipart body", h.logger)
			return
		}
		defer r.MultipartForm.RemoveAll()

		parsed, err := productFromForm(r.MultipartForm)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, err.Error(), h.logger)
			return
		}
		req = *parsed

		var closeAll func()
		uploads, closeAll, err = openUploads(r.MultipartForm.File[imagesField])
		defer closeAll()
		if err != nil {
			writeServiceError(w, r, err, "failed to read uploaded files", h.logger)
			return
		}
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	product, err := h.service.AddProduct(r.Context(), &req, uploads)
	if err != nil {
		writeServiceError(w, r, err, "failed to add product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{Success: true, Name: product.Name, Product: product})
}

// RemoveProduct handles POST /removeproduct.
func (h *ProductHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	var req model.RemoveProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.RemoveProduct(r.Context(), req.ID); err != nil {
		writeServiceError(w, r, err, "failed to remove product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{Success: true, Name: req.Name})
}

// productFromForm reads the product fields of a multipart form.
// sizes, when present, is a JSON array of {name, quantity}.
func productFromForm(form *multipart.Form) (*model.ProductRequest, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := &model.ProductRequest{
		Name:        value("name"),
		Description: value("description"),
		Category:    value("category"),
		Colour:      value("colour"),
	}

	var err error
	if req.NewPrice, err = parsePrice(value("new_price")); err != nil {
		return nil, errors.New("invalid new_price")
	}
	if req.OldPrice, err = parsePrice(value("old_price")); err != nil {
		return nil, errors.New("invalid old_price")
	}

	if sizes := value("sizes"); sizes != "" {
		if err := json.Unmarshal([]byte(sizes), &req.Sizes); err != nil {
			return nil, errors.New("invalid sizes")
		}
	}

	return req, nil
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// openUploads opens every file header. The returned func closes whatever was opened.
func openUploads(files []*multipart.FileHeader) ([]service.ImageUpload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, f)
		uploads = append(uploads, service.ImageUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	return uploads, closeAll, nil
}
