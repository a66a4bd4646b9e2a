// Package preset stores named sets of conversion options in SQLite so a
// display's settings can be reused across images.
package preset

import (
	"time"

	"github.com/google/uuid"

	"tomgalvin.uk/imgarray/internal/convert"
)

type Preset struct {
	Id        int
	Uuid      uuid.UUID
	Name      string
	CreatedAt time.Time
	Options   convert.Options
}

func New(name string, o convert.Options) *Preset {
	return &Preset{
		Uuid:      uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Options:   o,
	}
}
