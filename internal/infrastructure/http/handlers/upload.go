package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/freshdeli/console/internal/application/ports"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/generator"
	"github.com/freshdeli/console/internal/pkg/logger"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadHandler stores item images on local disk under a generated key and
// records the public URL on the item.
type UploadHandler struct {
	catalogRepo ports.CatalogRepository
	cache       ports.Cache
	codeGen     *generator.CodeGenerator
	uploadDir   string
	baseURL     string
	maxBytes    int64
	logger      *logger.Logger
}

func NewUploadHandler(
	catalogRepo ports.CatalogRepository,
	cache ports.Cache,
	uploadDir, baseURL string,
	maxBytes int64,
	log *logger.Logger,
) *UploadHandler {
	return &UploadHandler{
		catalogRepo: catalogRepo,
		cache:       cache,
		codeGen:     generator.NewCodeGenerator(),
		uploadDir:   uploadDir,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		maxBytes:    maxBytes,
		logger:      log,
	}
}

type UploadResponse struct {
	ItemID   int64  `json:"item_id"`
	ImageURL string `json:"image_url"`
}

func (h *UploadHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.catalogRepo.GetItemByID(ctx, id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		response.WriteDomainError(w, domainErrors.ErrImageTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"image": "Image file is required",
		})
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		response.WriteDomainError(w, domainErrors.ErrImageTooLarge)
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		response.WriteDomainError(w, domainErrors.ErrUnsupportedImageType)
		return
	}

	key, err := h.codeGen.GenerateImageKey(item.ID, header.Filename)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	destPath := filepath.Join(h.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	dest, err := os.Create(destPath)
	if err != nil {
		h.logger.Error("Failed to create image file", "error", err.Error(), "path", destPath)
		response.WriteDomainError(w, err)
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		h.logger.Error("Failed to write image file", "error", err.Error(), "path", destPath)
		os.Remove(destPath)
		response.WriteDomainError(w, err)
		return
	}

	imageURL := h.baseURL + "/" + key
	if err := h.catalogRepo.UpdateImageURL(ctx, item.ID, imageURL); err != nil {
		h.logger.Error("Failed to record image URL", "error", err.Error(), "item_id", item.ID)
		os.Remove(destPath)
		response.WriteDomainError(w, err)
		return
	}

	if err := h.cache.InvalidateStorefrontCatalog(ctx); err != nil {
		h.logger.Warn("Failed to invalidate storefront cache", "error", err.Error())
	}

	h.logger.Info("Item image uploaded", "item_id", item.ID, "key", key, "bytes", header.Size)

	response.WriteSuccess(w, UploadResponse{
		ItemID:   item.ID,
		ImageURL: imageURL,
	})
}
