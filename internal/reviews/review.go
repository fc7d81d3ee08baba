package reviews

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"avaliacoes/pkg/models"
)

const suffixLen = 8

// NewID returns a base36 millisecond timestamp followed by a random base36
// suffix.
func NewID(now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[8:])

	suffix := strconv.FormatUint(n, 36)
	if len(suffix) < suffixLen {
		suffix = strings.Repeat("0", suffixLen-len(suffix)) + suffix
	}
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix[len(suffix)-suffixLen:]
}

func hasRequired(in models.ReviewInput) bool {
	return models.Text(in.Title) != "" &&
		models.Text(in.Comment) != "" &&
		models.Num(in.Rating) != 0
}

// fromCreate builds the row for a create request. ok is false when title,
// comment or rating is missing.
func fromCreate(in models.ReviewInput, now time.Time) (review models.Review, ok bool) {
	if !hasRequired(in) {
		return models.Review{}, false
	}

	id := models.Text(in.ID)
	if id == "" {
		id = NewID(now)
	}
	return build(id, in, now), true
}

// fromImport is stricter than fromCreate: the id must be supplied.
func fromImport(in models.ReviewInput, now time.Time) (review models.Review, ok bool) {
	if models.Text(in.ID) == "" || !hasRequired(in) {
		return models.Review{}, false
	}
	return build(*in.ID, in, now), true
}

func build(id string, in models.ReviewInput, now time.Time) models.Review {
	created := int64(models.Num(in.Created))
	if created == 0 {
		created = now.UnixMilli()
	}
	return models.Review{
		ID:      id,
		Title:   *in.Title,
		Comment: *in.Comment,
		Rating:  models.Num(in.Rating),
		Name:    emptyToNil(in.Name),
		Email:   emptyToNil(in.Email),
		Created: created,
	}
}

// merge applies an update payload. Title, comment and rating keep the stored
// value when the payload leaves them empty; name and email always take the
// payload value, so omitting them clears them.
func merge(existing models.Review, in models.ReviewInput) models.Review {
	out := existing
	if t := models.Text(in.Title); t != "" {
		out.Title = t
	}
	if c := models.Text(in.Comment); c != "" {
		out.Comment = c
	}
	if r := models.Num(in.Rating); r != 0 {
		out.Rating = r
	}
	out.Name = in.Name
	out.Email = in.Email
	return out
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
