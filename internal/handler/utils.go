package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// entity names one resource for error codes and messages.
type entity struct {
	code   string
	name   string
	plural string
}

var (
	authorEntity   = entity{code: "AUTHOR", name: "author", plural: "authors"}
	categoryEntity = entity{code: "CATEGORY", name: "category", plural: "categories"}
	bookEntity     = entity{code: "BOOK", name: "book", plural: "books"}
	memberEntity   = entity{code: "MEMBER", name: "member", plural: "members"}
	loanEntity     = entity{code: "LOAN", name: "loan", plural: "loans"}
)

func (e entity) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(c, http.StatusBadRequest,
			"INVALID_"+e.code+"_ID",
			"invalid "+e.name+" id",
		)
		return 0, false
	}
	return uint(id), true
}

func (e entity) notFound(c *gin.Context) {
	writeError(c, http.StatusNotFound,
		e.code+"_NOT_FOUND",
		e.name+" not found",
	)
}

// fail writes a 500 for the given action, e.g. "create" gives
// BOOK_CREATE_FAILED / "failed to create book".
func (e entity) fail(c *gin.Context, action string) {
	subject := e.name
	if action == "list" {
		subject = e.plural
	}
	writeError(c, http.StatusInternalServerError,
		e.code+"_"+strings.ToUpper(action)+"_FAILED",
		"failed to "+action+" "+subject,
	)
}

// fetchFailed reports a lookup that went wrong for reasons other than a
// missing row.
func (e entity) fetchFailed(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrNotFound) {
		e.notFound(c)
		return
	}
	writeError(c, http.StatusInternalServerError,
		e.code+"_FETCH_FAILED",
		message,
	)
}

func (e entity) deleteFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		e.notFound(c)
	case errors.Is(err, repository.ErrConstraintViolation):
		writeError(c, http.StatusConflict,
			e.code+"_IN_USE",
			e.name+" is still referenced by other records",
		)
	default:
		e.fail(c, "delete")
	}
}

// writeFailed handles store errors on create and update. Integrity errors
// that slipped past reference resolution are still the caller's fault.
func (e entity) writeFailed(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		e.notFound(c)
	case errors.Is(err, repository.ErrConstraintViolation):
		validation.Respond(c, validation.NewError("", "exists", "referenced record does not exist"))
	case errors.Is(err, repository.ErrDuplicate):
		validation.Respond(c, validation.NewError("", "unique", e.name+" violates a uniqueness constraint"))
	default:
		e.fail(c, action)
	}
}

// reference is a foreign id in a payload that must point at a stored row.
type reference struct {
	field  string
	target string
	id     uint
	repo   existence
}

// resolveReferences writes the response and returns false when a reference is
// dangling or cannot be checked.
func resolveReferences(c *gin.Context, e entity, refs ...reference) bool {
	ctx := c.Request.Context()
	for _, ref := range refs {
		ok, err := ref.repo.Exists(ctx, ref.id)
		if err != nil {
			writeError(c, http.StatusInternalServerError,
				e.code+"_REFERENCE_CHECK_FAILED",
				"failed to resolve "+ref.field,
			)
			return false
		}
		if !ok {
			validation.Respond(c, validation.NewError(ref.field, "exists",
				"referenced "+ref.target+" does not exist",
			))
			return false
		}
	}
	return true
}

func respondRule(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		validation.Respond(c, verr)
		return true
	}
	validation.Respond(c, validation.NewError("", "invalid", err.Error()))
	return true
}

func noFieldsToUpdate(c *gin.Context) {
	writeError(c, http.StatusBadRequest,
		"NO_FIELDS_TO_UPDATE",
		"at least one field must be provided to update",
	)
}

// existence is the slice of a repository reference resolution needs.
type existence interface {
	Exists(ctx context.Context, id uint) (bool, error)
}
