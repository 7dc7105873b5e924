package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// InvalidID - значение поля id, означающее непригодную запись
const InvalidID = -1

var (
	// ErrNoRecord - для id нет записи в источнике
	ErrNoRecord = errors.New("definition record not found")
	// ErrInvalidRecord - запись прочитана, но её id равен InvalidID
	ErrInvalidRecord = errors.New("definition record has invalid id")
)

// Definition - неизменяемые статические данные объекта.
// Один экземпляр разделяется всеми размещёнными объектами с этим id.
type Definition struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Actions          []string `json:"actions,omitempty"`
	SizeX            int      `json:"sizeX"`
	SizeY            int      `json:"sizeY"`
	InteractType     int      `json:"interactType"`
	WallOrDoor       int      `json:"wallOrDoor"`
	AnimationID      int      `json:"animationID"`
	MapAreaID        int      `json:"mapAreaId"`
	MapSceneID       int      `json:"mapSceneID"`
	BlocksProjectile bool     `json:"blocksProjectile"`
	Solid            bool     `json:"isSolid"`
}

// Decode разбирает JSON-запись определения.
// Запись без поля id считается непригодной так же, как запись с id = -1.
func Decode(data []byte) (*Definition, error) {
	def := &Definition{ID: InvalidID}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	if def.ID == InvalidID {
		return nil, ErrInvalidRecord
	}
	return def, nil
}

// HasAction проверяет наличие пункта меню (без учёта регистра)
func (d *Definition) HasAction(action string) bool {
	if d == nil {
		return false
	}
	for _, a := range d.Actions {
		if a != "" && strings.EqualFold(a, action) {
			return true
		}
	}
	return false
}

// Interactive сообщает, есть ли у объекта хотя бы один пункт меню
func (d *Definition) Interactive() bool {
	if d == nil {
		return false
	}
	for _, a := range d.Actions {
		if a != "" {
			return true
		}
	}
	return false
}
