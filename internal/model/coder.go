package model

// Coder represents a user identity. The color is shown next to the coder's
// statements and documents, the preference fields drive the editor popup.
type Coder struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Name              string `gorm:"not null"`
	Red               int    `gorm:"not null;default:0"`
	Green             int    `gorm:"not null;default:0"`
	Blue              int    `gorm:"not null;default:0"`
	Password          string `gorm:"not null"` // bcrypt hash, never the clear text
	Refresh           int    `gorm:"not null;default:0"`
	FontSize          int    `gorm:"not null;default:14"`
	ColorByCoder      bool   `gorm:"not null;default:false"`
	PopupWidth        int    `gorm:"not null;default:300"`
	PopupDecoration   bool   `gorm:"not null;default:false"`
	PopupAutoComplete bool   `gorm:"not null;default:true"`

	Permissions CoderPermissions `gorm:"embedded;embeddedPrefix:perm_"`

	// Relations holds the pairwise visibility flags keyed by the other
	// coder's id. Loaded on demand, not a gorm association column.
	Relations map[int64]*CoderRelation `gorm:"-"`
}

// CoderPermissions is the matrix of boolean permission flags stored inline
// on the coders table.
type CoderPermissions struct {
	AddDocuments         bool `gorm:"not null;default:true"`
	EditDocuments        bool `gorm:"not null;default:true"`
	DeleteDocuments      bool `gorm:"not null;default:true"`
	ImportDocuments      bool `gorm:"not null;default:true"`
	AddStatements        bool `gorm:"not null;default:true"`
	EditStatements       bool `gorm:"not null;default:true"`
	DeleteStatements     bool `gorm:"not null;default:true"`
	EditAttributes       bool `gorm:"not null;default:true"`
	EditRegex            bool `gorm:"not null;default:true"`
	EditStatementTypes   bool `gorm:"not null;default:true"`
	EditCoders           bool `gorm:"not null;default:false"`
	EditCoderRelations   bool `gorm:"not null;default:true"`
	EditCoderSettings    bool `gorm:"not null;default:true"`
	ViewOthersDocuments  bool `gorm:"not null;default:true"`
	ViewOthersStatements bool `gorm:"not null;default:true"`
}

// CoderRelation stores whether a coder may view/edit another coder's
// documents and statements. One row per ordered (coder, other coder) pair.
type CoderRelation struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	CoderID      int64  `gorm:"not null;uniqueIndex:idx_coder_relations_pair;index"`
	OtherCoderID int64  `gorm:"not null;uniqueIndex:idx_coder_relations_pair"`
	Coder        *Coder `gorm:"foreignKey:CoderID;constraint:OnDelete:CASCADE"`
	OtherCoder   *Coder `gorm:"foreignKey:OtherCoderID;constraint:OnDelete:CASCADE"`

	ViewDocuments  bool `gorm:"not null;default:true"`
	EditDocuments  bool `gorm:"not null;default:true"`
	ViewStatements bool `gorm:"not null;default:true"`
	EditStatements bool `gorm:"not null;default:true"`
}
