// Package catalog holds the item lists the command layer offers as choices
// and the starting kit granted at character enrollment. A YAML file can
// override the compiled-in defaults per community.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog lists the known items per collection
type Catalog struct {
	Weapons    []string `yaml:"weapons"`
	Mounts     []string `yaml:"mounts"`
	Permits    []string `yaml:"permits"`
	Properties []string `yaml:"properties"`

	// StartingBank is the welcome bonus credited at enrollment
	StartingBank int64 `yaml:"starting_bank"`

	// StartingWeapons is the kit granted at enrollment
	StartingWeapons map[string]int `yaml:"starting_weapons"`
}

// Default returns the built-in catalog
func Default() *Catalog {
	return &Catalog{
		Weapons: []string{
			"Cattleman Revolver", "Double-Action Revolver", "Schofield Revolver",
			"LeMat Revolver", "Navy Revolver", "Mauser Pistol",
			"Semi-Automatic Pistol", "Volcanic Pistol",
			"Repeating Carbine", "Lancaster Repeater", "Litchfield Repeater",
			"Evans Repeater", "Bolt-Action Rifle", "Springfield Rifle",
			"Rolling Block Rifle", "Carcano Rifle", "Double-Barreled Shotgun",
			"Semi-Automatic Shotgun", "Pump-Action Shotgun",
			"Hunting Knife", "Machete", "Hatchet", "Sword",
			"Throwing Knife", "Tomahawk",
		},
		Mounts: []string{
			"Kentucky Saddler", "Morgan", "Tennessee Walker", "Suffolk Punch",
			"Shire", "Nokota", "Thoroughbred", "American Standardbred",
			"War Horse", "Ardennes", "Hungarian Halfbred", "Andalusian",
			"Dutch Warmblood", "Appaloosa", "American Paint",
			"Missouri Fox Trotter", "Mustang", "Turkoman", "Breton",
			"Criollo", "Kladruber", "Gypsy Cob", "Arabian",
		},
		Permits: []string{
			"Longarm Permit", "Heavy Weapons Permit", "Long-Distance Permit",
			"Hunting License", "Bounty Hunter License",
			"Government Mandate", "Government Laissez-Passer",
		},
		Properties: []string{
			"Shady Belle", "Caliga Hall", "Bourbon Manor",
			"Saint Denis Royal Palace", "Braithwaite Manor",
			"Small House", "Medium House", "Large House", "Emerald Ranch",
			"Saint Denis Saloon", "Rhodes Saloon", "Van Horn Saloon",
			"Blackwater Saloon", "Rhodes Gunsmith", "Saint Denis Gunsmith",
			"Van Horn Stable", "Saint Denis Stable", "Distillery", "Business",
		},
		StartingBank: 500,
		StartingWeapons: map[string]int{
			"Cattleman Revolver": 1,
			"Hunting Knife":      1,
		},
	}
}

// Load reads a catalog from a YAML file. Fields absent from the file keep
// their default values.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	cat := Default()
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return cat, nil
}

// Contains reports whether name is one of the listed items
func Contains(items []string, name string) bool {
	for _, item := range items {
		if item == name {
			return true
		}
	}
	return false
}
