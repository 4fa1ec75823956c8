package levels

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultImageURL is seeded by level id so every device sees the same picture
// for the same level.
const DefaultImageURL = "https://picsum.photos/seed/%d/800"

type Category string

const (
	Nature       Category = "Nature"
	Animals      Category = "Animals"
	Travel       Category = "Travel"
	Art          Category = "Art"
	Food         Category = "Food"
	Architecture Category = "Architecture"
)

// Categories is indexed by (id-1) mod len(Categories).
var Categories = [...]Category{Nature, Animals, Travel, Art, Food, Architecture}

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
	Expert Difficulty = "Expert"
)

// Config describes one level. It is never persisted; resolve it again when needed.
type Config struct {
	ID         int
	GridSize   int
	Category   Category
	ImageSrc   string
	Difficulty Difficulty
}

// Pieces returns the number of tiles the level is cut into.
func (c Config) Pieces() int {
	return c.GridSize * c.GridSize
}

func (c Config) String() string {
	return fmt.Sprintf("level %d (%dx%d %s, %s)", c.ID, c.GridSize, c.GridSize, c.Difficulty, c.Category)
}

// Resolver maps level ids to configs using an image URL template containing a
// single %d verb for the id.
type Resolver struct {
	ImageURL string
}

// Resolve returns the config for id using DefaultImageURL.
func Resolve(id int) Config {
	return Resolver{}.Resolve(id)
}

func (r Resolver) Resolve(id int) Config {
	id = Normalize(id)
	grid, diff := tier(id)
	return Config{
		ID:         id,
		GridSize:   grid,
		Category:   Categories[(id-1)%len(Categories)],
		ImageSrc:   r.imageURL(id),
		Difficulty: diff,
	}
}

func (r Resolver) imageURL(id int) string {
	tmpl := r.ImageURL
	if tmpl == "" || !strings.Contains(tmpl, "%d") {
		tmpl = DefaultImageURL
	}
	return fmt.Sprintf(tmpl, id)
}

// Levels 1-5 are 3x3, 6-15 4x4, 16-30 5x5 and everything after caps at 6x6.
func tier(id int) (int, Difficulty) {
	switch {
	case id > 30:
		return 6, Expert
	case id > 15:
		return 5, Hard
	case id > 5:
		return 4, Medium
	default:
		return 3, Easy
	}
}

// Normalize maps non-positive ids to level 1.
func Normalize(id int) int {
	if id < 1 {
		return 1
	}
	return id
}

// ParseID parses a level identifier such as a route segment. Anything that is
// not a positive integer becomes level 1.
func ParseID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return Normalize(id)
}
