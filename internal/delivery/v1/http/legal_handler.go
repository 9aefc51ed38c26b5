package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

// legalDocs — допустимые юридические документы и их файлы.
// Запросы за пределами этого списка получают 404, а не доступ к файловой системе.
var legalDocs = map[string]string{
	"privacy-policy":   "privacy_policy.md",
	"terms-of-service": "terms_of_service.md",
	"cookie-policy":    "cookie_policy.md",
}

type LegalHandler struct {
	docsDir string
	logger  logger.Logger
}

func NewLegalHandler(docsDir string, logger logger.Logger) *LegalHandler {
	return &LegalHandler{docsDir: docsDir, logger: logger}
}

// getDocument
//
//	@Summary		Юридический документ
//	@Description	Возвращает текст документа: privacy-policy, terms-of-service или cookie-policy
//	@Tags			legal
//	@Produce		plain
//	@Param			doc	path		string	true	"Имя документа"
//	@Success		200	{string}	string
//	@Failure		404	{object}	ErrorResponse
//	@Router			/legal/{doc} [get]
func (h *LegalHandler) getDocument(w http.ResponseWriter, r *http.Request) {
	doc := chi.URLParam(r, "doc")

	filename, ok := legalDocs[doc]
	if !ok {
		h.logger.Warnf("%d %s: %s", http.StatusNotFound, e.ErrUnknownLegalDoc.Error(), doc)
		WriteError(w, e.ErrUnknownLegalDoc)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.docsDir, filename))
	if err != nil {
		h.logger.Errorf(e.Wrap(whereami.WhereAmI(), err), "Failed to read legal document %s", doc)
		WriteError(w, e.ErrInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
