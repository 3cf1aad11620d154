package game

import "math/rand"

// WordTable maps each category to its candidate secret words.
var WordTable = map[string][]string{
	"Animals": {
		"dragon", "falcon", "wolf", "panther", "cobra",
		"dolphin", "octopus", "scorpion", "spider", "tiger",
	},
	"Places": {
		"casino", "subway", "rooftop", "warehouse", "temple",
		"fortress", "pyramid", "tower", "harbor", "stadium",
	},
	"Objects": {
		"diamond", "mirror", "blade", "helmet", "shield",
		"compass", "lantern", "umbrella", "hammer", "hourglass",
	},
	"Food & Drink": {
		"coffee", "sushi", "burger", "pizza", "chocolate",
		"vanilla", "cinnamon", "wasabi", "honey", "whiskey",
	},
	"Nature": {
		"thunder", "tornado", "volcano", "glacier", "meteor",
		"eclipse", "aurora", "tsunami", "avalanche", "lightning",
	},
	"Technology": {
		"hologram", "robot", "satellite", "firewall", "drone",
		"keyboard", "circuit", "antenna", "server", "radar",
	},
}

// WordPick is one secret-word selection together with the word history to
// persist back to the game row.
type WordPick struct {
	Word      string
	Category  string
	UsedWords []string
}

// PickWord selects a secret word not present in the used history: a uniform
// category among those with at least one remaining word, then a uniform word
// within it. When every word in the table has been used the history is
// dropped and the pick is uniform over the full table, re-seeding the
// history with just the fresh word. Until that exhaustion point no word
// repeats within a game.
func PickWord(used []string) WordPick {
	usedSet := make(map[string]bool, len(used))
	for _, w := range used {
		usedSet[w] = true
	}

	remaining := make(map[string][]string)
	for category, words := range WordTable {
		for _, w := range words {
			if !usedSet[w] {
				remaining[category] = append(remaining[category], w)
			}
		}
	}

	if len(remaining) == 0 {
		// Pool exhausted: start the history over with one fresh pick.
		category := randomCategory(WordTable)
		word := randomWord(WordTable[category])
		return WordPick{Word: word, Category: category, UsedWords: []string{word}}
	}

	category := randomCategory(remaining)
	word := randomWord(remaining[category])
	return WordPick{Word: word, Category: category, UsedWords: append(append([]string{}, used...), word)}
}

func randomCategory(table map[string][]string) string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	return names[rand.Intn(len(names))]
}

func randomWord(words []string) string {
	return words[rand.Intn(len(words))]
}

// PoolSize is the total number of words in the table.
func PoolSize() int {
	total := 0
	for _, words := range WordTable {
		total += len(words)
	}
	return total
}
