package enka

// UIDResponse is the body of /api/uid/{uid}. Only the fields the importer reads are declared.
type UIDResponse struct {
	PlayerInfo     *PlayerInfo  `json:"playerInfo"`
	AvatarInfoList []AvatarInfo `json:"avatarInfoList"`
	TTL            int          `json:"ttl,omitempty"`
	UID            string       `json:"uid,omitempty"`
}

type PlayerInfo struct {
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	WorldLevel int    `json:"worldLevel,omitempty"`
}

type AvatarInfo struct {
	AvatarID      int                    `json:"avatarId"`
	TalentIDList  []int                  `json:"talentIdList"`
	PropMap       map[string]PropMapItem `json:"propMap"`
	SkillDepotID  int                    `json:"skillDepotId"`
	SkillLevelMap map[string]int         `json:"skillLevelMap"`
	EquipList     []EquipItem            `json:"equipList"`
}

// PropMapItem carries numbers as strings; ival is the integer form.
type PropMapItem struct {
	Type int    `json:"type,omitempty"`
	Ival string `json:"ival,omitempty"`
	Val  string `json:"val,omitempty"`
}

type EquipItem struct {
	ItemID    int             `json:"itemId"`
	Weapon    *EquipWeapon    `json:"weapon,omitempty"`
	Reliquary *EquipReliquary `json:"reliquary,omitempty"`
	Flat      EquipFlat       `json:"flat"`
}

type EquipWeapon struct {
	Level        int            `json:"level"`
	PromoteLevel int            `json:"promoteLevel,omitempty"`
	AffixMap     map[string]int `json:"affixMap,omitempty"`
}

// EquipReliquary.Level is one above the in-game level.
type EquipReliquary struct {
	Level      int `json:"level"`
	MainPropID int `json:"mainPropId"`
}

// PropValue is a stat line; which id field is set depends on where it appears.
type PropValue struct {
	MainPropID   string  `json:"mainPropId,omitempty"`
	AppendPropID string  `json:"appendPropId,omitempty"`
	StatValue    float64 `json:"statValue"`
}

type EquipFlat struct {
	ItemType       string `json:"itemType"`
	EquipType      string `json:"equipType,omitempty"`
	Icon           string `json:"icon"`
	SetAndKindIcon string `json:"setAndKindIcon,omitempty"`
	RankLevel      int    `json:"rankLevel"`

	SetNameTextMapHash string `json:"setNameTextMapHash,omitempty"`

	ReliquaryMainstat *PropValue  `json:"reliquaryMainstat,omitempty"`
	ReliquarySubstats []PropValue `json:"reliquarySubstats,omitempty"`
	WeaponStats       []PropValue `json:"weaponStats,omitempty"`
}

const (
	ItemWeapon    = "ITEM_WEAPON"
	ItemReliquary = "ITEM_RELIQUARY"
)
