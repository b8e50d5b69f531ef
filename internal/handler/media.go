package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/storage"
)

// 10 MiB upload cap for catalog images.
const maxUploadBytes = 10 << 20

// MediaHandler uploads catalog images to object storage (admin). The
// returned URL is what admins paste into destination, tour and banner
// records.
type MediaHandler struct {
    Store *storage.MediaStore
}

func NewMediaHandler(s *storage.MediaStore) *MediaHandler {
    return &MediaHandler{Store: s}
}

// Upload accepts a multipart "file" field plus an optional "folder"
// (destinations, tours or banners) and responds with the public URL.
func (h *MediaHandler) Upload(c echo.Context) error {
    if h.Store == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "media storage not configured"})
    }
    fh, err := c.FormFile("file")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
    }
    if fh.Size > maxUploadBytes {
        return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
    }
    contentType := fh.Header.Get("Content-Type")
    if !strings.HasPrefix(contentType, "image/") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image uploads are accepted"})
    }
    folder, ok := mediaFolder(c.FormValue("folder"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid folder"})
    }

    src, err := fh.Open()
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open upload failed"})
    }
    defer src.Close()

    ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
    defer cancel()

    url, err := h.Store.Upload(ctx, folder, fh.Filename, contentType, fh.Size, src)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "upload failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// UploadMany accepts a multipart "files" field with one or more images
// and responds with the public URL for each, in order. The whole batch
// is rejected up front if any file fails validation, so a partial
// upload only happens when storage itself errors mid-batch.
func (h *MediaHandler) UploadMany(c echo.Context) error {
    if h.Store == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "media storage not configured"})
    }
    form, err := c.MultipartForm()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
    }
    files := form.File["files"]
    if len(files) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "files required"})
    }
    folder, ok := mediaFolder(c.FormValue("folder"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid folder"})
    }
    for _, fh := range files {
        if fh.Size > maxUploadBytes {
            return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large: " + fh.Filename})
        }
        if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image uploads are accepted: " + fh.Filename})
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
    defer cancel()

    urls := make([]string, 0, len(files))
    for _, fh := range files {
        src, err := fh.Open()
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open upload failed: " + fh.Filename})
        }
        url, err := h.Store.Upload(ctx, folder, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, src)
        src.Close()
        if err != nil {
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "upload failed: " + fh.Filename})
        }
        urls = append(urls, url)
    }
    return c.JSON(http.StatusCreated, echo.Map{"urls": urls})
}

// mediaFolder validates the optional target folder. An empty value maps
// to the misc bucket prefix.
func mediaFolder(v string) (string, bool) {
    switch v {
    case "destinations", "tours", "banners":
        return v, true
    case "":
        return "misc", true
    default:
        return "", false
    }
}

// Remove deletes a previously uploaded object by its URL.
func (h *MediaHandler) Remove(c echo.Context) error {
    if h.Store == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "media storage not configured"})
    }
    var req struct {
        URL string `json:"url"`
    }
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.URL) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "url required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
    defer cancel()

    if err := h.Store.Delete(ctx, strings.TrimSpace(req.URL)); err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
