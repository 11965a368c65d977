package models

import (
	"time"
)

// SettingsID is the primary key of the single profile settings row.
const SettingsID = 1

// Settings is the creator profile configuration record. There is exactly one
// row; writes patch only the fields that arrive non-empty.
type Settings struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Nome        string `json:"nome"`
	Capa        string `json:"capa"`
	Avatar      string `json:"avatar"`
	Descricao   string `gorm:"type:text" json:"descricao"`
	Visto       string `json:"visto"`
	Destaque    string `gorm:"type:text" json:"destaque"`
	DestaqueBtn string `json:"destaque_btn"`

	// Plan prices in centavos. Zero means "use the configured default".
	PrecoMensal  int `json:"preco_mensal"`
	Preco3Meses  int `json:"preco_3m"`
	Preco6Meses  int `json:"preco_6m"`
	Preco12Meses int `json:"preco_12m"`

	// AI assistant persona and provider credentials. Keys are write-only on
	// the API: accepted on POST, never echoed on GET.
	IAPersona string `gorm:"type:text" json:"ia_persona"`
	IAKey     string `json:"-"`
	BestfyKey string `json:"-"`

	UpdatedAt time.Time `json:"last_updated"`
}

// SettingsPatch carries an inbound settings update. Empty fields are ignored;
// nil pointers on the numeric fields mean "not provided".
type SettingsPatch struct {
	Nome        string `json:"nome"`
	Capa        string `json:"capa"`
	Avatar      string `json:"avatar"`
	Descricao   string `json:"descricao"`
	Visto       string `json:"visto"`
	Destaque    string `json:"destaque"`
	DestaqueBtn string `json:"destaque_btn"`

	PrecoMensal  *int `json:"preco_mensal"`
	Preco3Meses  *int `json:"preco_3m"`
	Preco6Meses  *int `json:"preco_6m"`
	Preco12Meses *int `json:"preco_12m"`

	IAPersona string `json:"ia_persona"`
	IAKey     string `json:"ia_key"`
	BestfyKey string `json:"bestfy_key"`
}

// Columns builds the non-empty field set as a GORM update map. Returns an
// empty map when the patch carries nothing to change.
func (p SettingsPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	set := func(name, v string) {
		if v != "" {
			cols[name] = v
		}
	}
	set("nome", p.Nome)
	set("capa", p.Capa)
	set("avatar", p.Avatar)
	set("descricao", p.Descricao)
	set("visto", p.Visto)
	set("destaque", p.Destaque)
	set("destaque_btn", p.DestaqueBtn)
	set("ia_persona", p.IAPersona)
	set("ia_key", p.IAKey)
	set("bestfy_key", p.BestfyKey)

	setInt := func(name string, v *int) {
		if v != nil && *v >= 0 {
			cols[name] = *v
		}
	}
	setInt("preco_mensal", p.PrecoMensal)
	setInt("preco3_meses", p.Preco3Meses)
	setInt("preco6_meses", p.Preco6Meses)
	setInt("preco12_meses", p.Preco12Meses)
	return cols
}
