package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotSchemaVersion is bumped when the persisted document shape changes
const SnapshotSchemaVersion = 2

// Snapshot is the persisted union of a hunter's progression state and reward ledger.
// It is loaded and saved wholesale.
type Snapshot struct {
	Version      int              `json:"version"`
	Revision     int64            `json:"revision"`
	UserData     ProgressionState `json:"userData"`
	Ledger       RewardLedger     `json:"-"`
	Achievements []Achievement    `json:"achievements"`
	Skills       []Skill          `json:"skills"`
	Titles       []Title          `json:"titles"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// snapshotDocument flattens the ledger partitions into the top-level keys
// used by the stored document (dailyQuests, weeklyQuests, calendar, cycle).
type snapshotDocument struct {
	Version      int              `json:"version"`
	Revision     int64            `json:"revision"`
	UserData     ProgressionState `json:"userData"`
	DailyQuests  []RewardInstance `json:"dailyQuests"`
	WeeklyQuests []RewardInstance `json:"weeklyQuests"`
	Calendar     []RewardInstance `json:"calendar"`
	ClaimedDays  []int            `json:"claimedDays"`
	Cycle        LedgerCycle      `json:"cycle"`
	Achievements []Achievement    `json:"achievements"`
	Skills       []Skill          `json:"skills"`
	Titles       []Title          `json:"titles"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// MarshalJSON writes the flattened document form
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotDocument{
		Version:      s.Version,
		Revision:     s.Revision,
		UserData:     s.UserData,
		DailyQuests:  s.Ledger.Daily,
		WeeklyQuests: s.Ledger.Weekly,
		Calendar:     s.Ledger.Calendar,
		ClaimedDays:  s.Ledger.ClaimedDays(),
		Cycle:        s.Ledger.Cycle,
		Achievements: s.Achievements,
		Skills:       s.Skills,
		Titles:       s.Titles,
		UpdatedAt:    s.UpdatedAt,
	})
}

// UnmarshalJSON reads the flattened document form. claimedDays is derived
// from the calendar and only used when the calendar itself is absent.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = Snapshot{
		Version:  doc.Version,
		Revision: doc.Revision,
		UserData: doc.UserData,
		Ledger: RewardLedger{
			Daily:    doc.DailyQuests,
			Weekly:   doc.WeeklyQuests,
			Calendar: doc.Calendar,
			Cycle:    doc.Cycle,
		},
		Achievements: doc.Achievements,
		Skills:       doc.Skills,
		Titles:       doc.Titles,
		UpdatedAt:    doc.UpdatedAt,
	}

	if len(s.Ledger.Calendar) == 0 && len(doc.ClaimedDays) > 0 {
		for _, day := range doc.ClaimedDays {
			s.Ledger.Calendar = append(s.Ledger.Calendar, RewardInstance{
				Kind: RewardKindCalendarDay, ID: day, Progress: 1, Total: 1, Claimed: true,
			})
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := s
	out.UserData = s.UserData.Clone()
	out.Ledger = s.Ledger.Clone()
	out.Achievements = append([]Achievement(nil), s.Achievements...)
	out.Skills = append([]Skill(nil), s.Skills...)
	out.Titles = append([]Title(nil), s.Titles...)
	return out
}

// Validate performs structural checks on a decoded snapshot. A snapshot that fails
// validation is treated as malformed.
func (s Snapshot) Validate() error {
	if s.UserData.Level < 1 {
		return fmt.Errorf("%w: level %d", ErrMalformedSnapshot, s.UserData.Level)
	}
	if s.UserData.XPToNextLevel <= 0 {
		return fmt.Errorf("%w: xp threshold %d", ErrMalformedSnapshot, s.UserData.XPToNextLevel)
	}
	if s.UserData.CurrentXP < 0 {
		return fmt.Errorf("%w: negative xp", ErrMalformedSnapshot)
	}
	return nil
}

// DecodeSnapshot parses a stored document, wrapping every failure in ErrMalformedSnapshot
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.UserData.Stats == nil {
		s.UserData.Stats = map[string]int64{}
	}
	return &s, nil
}
