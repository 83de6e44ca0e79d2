package models

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralCodeLength is the number of symbols in a minted referral code.
// With a 32-symbol alphabet this gives a 32^8 (~1.1e12) token space, so
// collisions are not practically observable at waitlist sizes in the
// thousands.
const ReferralCodeLength = 8

// referralCodeAlphabet excludes ambiguous symbols (0/O, 1/I) since codes
// end up in share links and get typed by hand.
const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// WaitlistEntry is one waitlist signup record. Entries are created only by
// the signup operation and never deleted; the only field ever mutated after
// creation is ReferralCount.
type WaitlistEntry struct {
	ID            string    `gorm:"type:text;primaryKey" json:"id"`
	Email         string    `gorm:"not null;uniqueIndex" json:"email"`
	ReferralCode  string    `gorm:"not null;uniqueIndex" json:"referral_code"`
	ReferredBy    string    `gorm:"index" json:"referred_by,omitempty"`
	ReferralCount int       `gorm:"not null;default:0" json:"referral_count"`
	Position      int       `gorm:"not null" json:"position"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (e *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.ReferralCode == "" {
		code, err := NewReferralCode()
		if err != nil {
			return err
		}
		e.ReferralCode = code
	}
	return nil
}

// NewReferralCode mints an opaque referral token from crypto/rand.
func NewReferralCode() (string, error) {
	buf := make([]byte, ReferralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
	}
	return string(buf), nil
}
