package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var maxEcoScore = decimal.NewFromInt(100)

type User struct {
	ID           int64           `json:"userId" db:"user_id"`
	Username     string          `json:"username" db:"username"`
	Email        string          `json:"email" db:"email"`
	PasswordHash *string         `json:"-" db:"password_hash"`
	Points       int             `json:"points" db:"points"`
	Level        int             `json:"level" db:"level"`
	SwapCount    int             `json:"swapCount" db:"swap_count"`
	EcoScore     decimal.Decimal `json:"ecoScore" db:"eco_score"`
	Bio          *string         `json:"bio,omitempty" db:"bio"`
	Avatar       *string         `json:"avatar,omitempty" db:"avatar"`
	Location     *string         `json:"location,omitempty" db:"location"`
	Preferences  Preferences     `json:"preferences" db:"preferences"`
	JoinedAt     time.Time       `json:"joinedAt" db:"joined_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// Preferences is stored as a JSONB document.
type Preferences struct {
	Sizes      []string `json:"sizes"`
	Categories []string `json:"categories"`
	Styles     []string `json:"styles"`
}

func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Preferences) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Preferences{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("preferences: unsupported scan type")
	}
}

type CreateUserInput struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Password    string       `json:"password,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

func (in *CreateUserInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in CreateUserInput) Validate() error {
	v := &ValidationError{}
	if in.Username == "" {
		v.Add("username", "is required")
	}
	if in.Email == "" {
		v.Add("email", "is required")
	} else if !isEmail(in.Email) {
		v.Add("email", "is not a valid address")
	}
	if in.Password != "" && len(in.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	return v.Err()
}

// UpdateUserInput carries a partial update. Progress fields (points, level,
// swapCount, ecoScore) are owned by the swap lifecycle and cannot be set here.
type UpdateUserInput struct {
	ID          *int64       `json:"userId"`
	Username    *string      `json:"username,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Password    *string      `json:"password,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Apply merges the partial input into u and validates the result.
func (in UpdateUserInput) Apply(u *User) error {
	v := &ValidationError{}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			v.Add("username", "is required")
		}
		u.Username = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !isEmail(email) {
			v.Add("email", "is not a valid address")
		}
		u.Email = email
	}
	if in.Password != nil && len(*in.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Avatar != nil {
		u.Avatar = in.Avatar
	}
	if in.Location != nil {
		u.Location = in.Location
	}
	if in.Preferences != nil {
		u.Preferences = *in.Preferences
	}
	return v.Err()
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// SwapReward describes what a single party gains from a completed swap.
type SwapReward struct {
	Points         int
	EcoScoreDelta  decimal.Decimal
	PointsPerLevel int
}

// ApplySwapReward records one completed swap on the user.
func (u *User) ApplySwapReward(r SwapReward) {
	u.SwapCount++
	u.Points += r.Points
	if u.Points < 0 {
		u.Points = 0
	}
	u.EcoScore = u.EcoScore.Add(r.EcoScoreDelta).Round(2)
	if u.EcoScore.GreaterThan(maxEcoScore) {
		u.EcoScore = maxEcoScore
	}
	u.Level = LevelForPoints(u.Points, r.PointsPerLevel)
}

func LevelForPoints(points, perLevel int) int {
	if perLevel <= 0 {
		return 1
	}
	return 1 + points/perLevel
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
