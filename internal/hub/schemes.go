package hub

import (
	"fmt"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/schemes"
)

func (h *Hub) Schemes(typ domain.SchemeType, term string) []domain.Scheme {
	return schemes.Filter(schemes.All(), typ, term)
}

func (h *Hub) Scheme(id int) (domain.Scheme, error) {
	s, ok := schemes.Find(id)
	if !ok {
		return domain.Scheme{}, fmt.Errorf("scheme %d: %w", id, ErrNotFound)
	}
	return s, nil
}
