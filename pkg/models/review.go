package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Review is a stored row. Name and Email are NULL-able and encode as null.
type Review struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Created int64   `json:"created"`
}

// ReviewInput is a client payload for create, update and import. Absent and
// null fields both decode to nil.
type ReviewInput struct {
	ID      *string `json:"id"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
	Rating  *Number `json:"rating"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Created *Number `json:"created"`
}

// Number decodes either a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Text returns the value of a possibly nil string.
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Num returns the value of a possibly nil number.
func Num(p *Number) float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}
