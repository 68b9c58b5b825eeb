package planner

import (
	"math/rand"
	"time"
)

type Quote struct {
	Text   string
	Author string
}

var quotes = []Quote{
	{"The journey of a thousand miles begins with a single step.", "Lao Tzu"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"The best way to predict the future is to create it.", "Peter Drucker"},
	{"Whether you think you can, or you think you can't, you're right.", "Henry Ford"},
	{"It does not do to dwell on dreams and forget to live.", "J.K. Rowling"},
	{"I can resist everything except temptation.", "Oscar Wilde"},
	{"Never put off till tomorrow what may be done day after tomorrow just as well.", "Mark Twain"},
	{"Not all those who wander are lost.", "J.R.R. Tolkien"},
	{"There is some good in this world, and it's worth fighting for.", "J.R.R. Tolkien"},
	{"Get busy living or get busy dying.", "Stephen King"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Do not wait; the time will never be 'just right.' Start where you stand.", "Napoleon Hill"},
	{"You do not rise to the level of your goals. You fall to the level of your systems.", "James Clear"},
	{"If you're going through hell, keep going.", "Winston Churchill"},
	{"There is a crack in everything, that's how the light gets in.", "Leonard Cohen"},
	{"We are all in the gutter, but some of us are looking at the stars.", "Oscar Wilde"},
}

// QuoteOfTheDay picks a stable quote for the calendar day.
func QuoteOfTheDay(now time.Time) Quote {
	return quotes[now.YearDay()%len(quotes)]
}

var cheers = []string{
	"Amazing! You nailed it!",
	"Great job! Keep crushing those tasks!",
	"You're unstoppable today!",
	"Boom! Another one bites the dust!",
	"Way to go! Productivity power-up!",
	"Task done and dusted! You're on fire!",
	"Fantastic! You're smashing your goals!",
	"One step closer to success!",
	"That's how champions roll!",
	"Incredible focus! Keep it up!",
}

// Cheer returns a random celebration for a completed task. A nil source uses
// the package-level generator.
func Cheer(r *rand.Rand) string {
	if r == nil {
		return cheers[rand.Intn(len(cheers))]
	}
	return cheers[r.Intn(len(cheers))]
}
