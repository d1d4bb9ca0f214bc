package image

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const cacheControl = "public, max-age=86400"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var directories = map[string]bool{
	constant.ImageDirectoryRoom: true,
	constant.ImageDirectoryBlog: true,
}

type Handler struct {
	s3   s3.S3
	otel otel.Otel
}

func New(s3 s3.S3, otel otel.Otel) Handler {
	return Handler{
		s3:   s3,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/images/{directory}/{filename}", handler.GetImage)
}

// GetImage streams an uploaded room or blog image.
// @Summary Get an uploaded image
// @Tags Public
// @Produce octet-stream
// @Param directory path string true "rooms or blogs"
// @Param filename path string true "File name"
// @Success 200 {file} binary
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{directory}/{filename} [get]
func (handler *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImage")
	defer scope.End()

	directory := chi.URLParam(r, constant.RequestParamDirectory)
	filename := path.Base(chi.URLParam(r, constant.RequestParamFilename))

	if !directories[directory] || filename == "." || filename == "/" {
		response.WithError(w, failure.NotFound("image not found"))

		return
	}

	object, err := handler.s3.GetFile(ctx, constant.Empty, directory, filename)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			response.WithError(w, failure.NotFound("image not found"))

			return
		}

		scope.TraceError(err)
		log.Error().Err(err).Str("file", filename).Msg("failed to get image")

		response.WithError(w, err)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, contentType(filename, object.ContentType))
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(object.Body); err != nil {
		log.Warn().Err(err).Msg("failed to write image")
	}
}

func contentType(filename, stored string) string {
	if known, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return known
	}

	if stored != constant.Empty {
		return stored
	}

	return constant.ContentTypeOctetStream
}
