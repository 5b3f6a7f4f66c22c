package models

import (
	"time"
)

// Wallet names one of the three money pockets on a record.
type Wallet string

const (
	// WalletCash is money carried on the person
	WalletCash Wallet = "cash"

	// WalletBank is money held at the bank
	WalletBank Wallet = "bank"

	// WalletDirty is unlaundered proceeds of risk actions
	WalletDirty Wallet = "dirty"
)

// Valid reports whether w names a known wallet
func (w Wallet) Valid() bool {
	switch w {
	case WalletCash, WalletBank, WalletDirty:
		return true
	}
	return false
}

// Collection names an inventory or holdings group on a record.
type Collection string

const (
	// CollectionWeapons is the quantity-bearing weapon inventory
	CollectionWeapons Collection = "weapons"

	// CollectionMounts is the quantity-bearing mount inventory
	CollectionMounts Collection = "mounts"

	// CollectionPermits is the presence-only permit set
	CollectionPermits Collection = "permits"

	// CollectionProperties is the presence-only property set
	CollectionProperties Collection = "properties"
)

// Valid reports whether c names a known collection
func (c Collection) Valid() bool {
	switch c {
	case CollectionWeapons, CollectionMounts, CollectionPermits, CollectionProperties:
		return true
	}
	return false
}

// Counted reports whether c tracks quantities rather than presence
func (c Collection) Counted() bool {
	return c == CollectionWeapons || c == CollectionMounts
}

// StatusLabel returns the marker stored for entries of a presence-only
// collection. Quantity-bearing collections have no label.
func (c Collection) StatusLabel() string {
	switch c {
	case CollectionPermits:
		return "valid"
	case CollectionProperties:
		return "deeded"
	}
	return ""
}

// Identity holds the free-form descriptive attributes of a character.
// These fields are opaque to the engine; they are stored and rendered,
// never validated or interpreted.
type Identity struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Titles      string `json:"titles,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"`
	BirthPlace  string `json:"birth_place,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
}

// IsZero reports whether no identity field has been set
func (i Identity) IsZero() bool {
	return i == Identity{}
}

// Inventory groups a record's item maps. Quantity maps never hold a key
// with a count of zero or less; removing the last unit deletes the key.
type Inventory struct {
	// Weapons maps weapon name to a positive count
	Weapons map[string]int `json:"weapons"`

	// Mounts maps mount breed to a positive count
	Mounts map[string]int `json:"mounts"`

	// Permits maps permit name to a status label; presence is the tracked fact
	Permits map[string]string `json:"permits"`
}

// Record is the persisted state for one player
type Record struct {
	// ID is the Discord user ID of the player
	ID string `json:"id"`

	// Identity is the character's descriptive attributes
	Identity Identity `json:"identity"`

	// Wallet balances. Admin debits may drive these negative;
	// player-initiated operations never do.
	Cash  int64 `json:"cash"`
	Bank  int64 `json:"bank"`
	Dirty int64 `json:"dirty"`

	// Inventory holds the item maps
	Inventory Inventory `json:"inventory"`

	// Properties maps property name to a status label
	Properties map[string]string `json:"properties"`

	// Cooldowns maps risk-action key to the unix time of last use
	Cooldowns map[string]int64 `json:"cooldowns"`

	// CreatedAt is when the record was first materialized
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record was last persisted
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns a default-initialized record for the given player ID
func New(id string) *Record {
	return &Record{
		ID: id,
		Inventory: Inventory{
			Weapons: make(map[string]int),
			Mounts:  make(map[string]int),
			Permits: make(map[string]string),
		},
		Properties: make(map[string]string),
		Cooldowns:  make(map[string]int64),
	}
}

// EnsureMaps initializes any nil sub-maps so callers can mutate freely.
// Records decoded from older persisted documents may be missing them.
func (r *Record) EnsureMaps() {
	if r.Inventory.Weapons == nil {
		r.Inventory.Weapons = make(map[string]int)
	}
	if r.Inventory.Mounts == nil {
		r.Inventory.Mounts = make(map[string]int)
	}
	if r.Inventory.Permits == nil {
		r.Inventory.Permits = make(map[string]string)
	}
	if r.Properties == nil {
		r.Properties = make(map[string]string)
	}
	if r.Cooldowns == nil {
		r.Cooldowns = make(map[string]int64)
	}
}

// Balance returns the balance of the named wallet
func (r *Record) Balance(w Wallet) int64 {
	switch w {
	case WalletCash:
		return r.Cash
	case WalletBank:
		return r.Bank
	case WalletDirty:
		return r.Dirty
	}
	return 0
}

// SetBalance sets the balance of the named wallet
func (r *Record) SetBalance(w Wallet, v int64) {
	switch w {
	case WalletCash:
		r.Cash = v
	case WalletBank:
		r.Bank = v
	case WalletDirty:
		r.Dirty = v
	}
}

// TotalWealth returns cash + bank + dirty
func (r *Record) TotalWealth() int64 {
	return r.Cash + r.Bank + r.Dirty
}

// CountMap returns the quantity map backing a counted collection,
// or nil for presence-only collections
func (r *Record) CountMap(c Collection) map[string]int {
	switch c {
	case CollectionWeapons:
		return r.Inventory.Weapons
	case CollectionMounts:
		return r.Inventory.Mounts
	}
	return nil
}

// FlagMap returns the presence map backing a presence-only collection,
// or nil for counted collections
func (r *Record) FlagMap(c Collection) map[string]string {
	switch c {
	case CollectionPermits:
		return r.Inventory.Permits
	case CollectionProperties:
		return r.Properties
	}
	return nil
}
