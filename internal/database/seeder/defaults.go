package seeder

import "groupie/internal/domain/reference"

// Defaults seeds the lookup tables the API expects to be populated. User
// types and match statuses are required; the rest are starter catalogues.
func Defaults() []Seeder {
	return []Seeder{
		MatchStatusSeeder{},
		NamesSeeder{Kind: reference.UserType, Names: []string{"Groupie", "Musician", "Admin"}},
		NamesSeeder{Kind: reference.ProficiencyLevel, Names: []string{"Novice", "Intermediate", "Advanced", "Pro"}},
		NamesSeeder{Kind: reference.Genre, Names: []string{
			"Rock", "Jazz", "Blues", "Pop", "Metal", "Punk", "Funk",
			"Country", "Folk", "Classical", "Reggae", "Soul", "Electronic",
		}},
		NamesSeeder{Kind: reference.Instrument, Names: []string{
			"Guitar", "Bass", "Drums", "Vocals", "Keyboard", "Piano", "Violin", "Saxophone", "Trumpet",
		}},
		NamesSeeder{Kind: reference.Location, Names: []string{"New York", "Los Angeles", "Chicago", "Austin", "Nashville"}},
	}
}
