package model

type TeamRole string

const (
	TeamRoleCaptain TeamRole = "captain"
	TeamRoleMember  TeamRole = "member"
)

type Team struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	CaptainID   uint   `gorm:"index;not null" json:"captainId"`
	Public      bool   `json:"public"`
	MaxMembers  int    `gorm:"default:10" json:"maxMembers"`
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	BaseModel
	TeamID uint     `gorm:"index:idx_team_user,unique;not null" json:"teamId"`
	UserID uint     `gorm:"index:idx_team_user,unique;not null" json:"userId"`
	User   *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role   TeamRole `gorm:"size:20;default:'member'" json:"role"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
