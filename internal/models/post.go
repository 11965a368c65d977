package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Post types, derived from which media fields are present.
const (
	PostTipoTexto      = "texto"
	PostTipoFoto       = "foto"
	PostTipoFotoTexto  = "foto+texto"
	PostTipoVideo      = "video"
	PostTipoVideoTexto = "video+texto"
)

// Reaction emoji tracked per post.
const (
	ReactionHeart  = "❤️"
	ReactionInLove = "😍"
	ReactionThumbs = "👍"
)

// ReactionEmojis is the fixed emoji set every post tracks.
var ReactionEmojis = []string{ReactionHeart, ReactionInLove, ReactionThumbs}

// ReactionSet maps an emoji to a non-negative counter. Stored as a JSON
// column so the whole map is written atomically with the post row.
type ReactionSet map[string]int

// Value implements driver.Valuer for JSON column storage.
func (r ReactionSet) Value() (driver.Value, error) {
	if r == nil {
		r = ReactionSet{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON column storage.
func (r *ReactionSet) Scan(value interface{}) error {
	if value == nil {
		*r = ReactionSet{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported reaction set type %T", value)
	}
}

// Post is a feed entry with reaction counters and nested comments.
type Post struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Tipo            string      `gorm:"not null" json:"tipo"`
	Texto           string      `gorm:"type:text" json:"texto,omitempty"`
	Foto            string      `json:"foto,omitempty"`
	Video           string      `json:"video,omitempty"`
	TargetReactions ReactionSet `gorm:"type:text" json:"target_reactions"`
	Reactions       ReactionSet `gorm:"type:text" json:"reactions"`
	Comments        []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt       time.Time   `json:"data"`
}

// Comment is a single comment attached to a post, ordered by creation time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Autor     string    `gorm:"not null" json:"autor"`
	Texto     string    `gorm:"type:text;not null" json:"texto"`
	CreatedAt time.Time `json:"data"`
}

// DerivePostTipo computes the post type from which fields are present.
func DerivePostTipo(texto, foto, video string) string {
	switch {
	case video != "" && texto != "":
		return PostTipoVideoTexto
	case video != "":
		return PostTipoVideo
	case foto != "" && texto != "":
		return PostTipoFotoTexto
	case foto != "":
		return PostTipoFoto
	default:
		return PostTipoTexto
	}
}
