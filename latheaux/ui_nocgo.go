//go:build tinygo || !cgo

package latheaux

import (
	"errors"

	"github.com/soypat/lathe"
)

func ui(m *lathe.Model, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
