package ui

import "github.com/slatesocial/site/internal/model"

// Features is the platform module catalogue. Card order is display order;
// the modal looks features up by ID.
var Features = []model.Feature{
	{
		ID:          "message-board",
		Title:       "Message Board",
		Summary:     "Threads for beta, route reviews and everyday gym chatter.",
		Description: "A moderated discussion space for your members. Share beta on fresh sets, review routes and keep conversations organised by wall and grade.",
		Highlights: []string{
			"Threads organised by wall, grade and topic",
			"Staff moderation with pinned posts",
			"Photo and video beta uploads",
		},
		Icon: "chat",
	},
	{
		ID:          "groups-clubs",
		Title:       "Groups & Clubs",
		Summary:     "Spaces for youth teams, meetups and training crews.",
		Description: "Give every crew in your gym a home. Youth teams, women's climbing nights, route setting volunteers and training groups each get their own space with events and chat.",
		Highlights: []string{
			"Public or invite-only groups",
			"Group events with RSVP",
			"Coach and organiser roles",
		},
		Icon: "users",
	},
	{
		ID:          "competitions",
		Title:       "Competitions",
		Summary:     "Run bouldering leagues with digital scorecards.",
		Description: "Host in-house leagues and throwdowns without the paperwork. Members log sends on their phones and results update as they climb.",
		Highlights: []string{
			"Digital scorecards with flash and zone scoring",
			"Live leaderboards by category",
			"Season standings across events",
		},
		Icon: "trophy",
	},
	{
		ID:          "gym-news",
		Title:       "Gym News",
		Summary:     "Announce resets, events and schedule changes.",
		Description: "Reach every member from one place. Post reset schedules, new set announcements and holiday hours, and pin what matters at the top of the feed.",
		Highlights: []string{
			"Scheduled and pinned announcements",
			"Reset calendar by wall",
			"Push and email delivery",
		},
		Icon: "news",
	},
	{
		ID:          "polls-feedback",
		Title:       "Polls & Feedback",
		Summary:     "Let members vote on what gets set next.",
		Description: "Find out what your members actually want. Run quick polls on upcoming sets, collect route feedback and track satisfaction over time.",
		Highlights: []string{
			"One-tap polls in the feed",
			"Route ratings and grade votes",
			"Feedback trends for staff",
		},
		Icon: "chart",
	},
	{
		ID:          "partner-finder",
		Title:       "Partner Finder",
		Summary:     "Match climbers by schedule, grade and discipline.",
		Description: "No belay partner, no session. Members post when they plan to climb and get matched with people at a similar level who want the same discipline.",
		Highlights: []string{
			"Matching by schedule and grade range",
			"Lead, top rope and bouldering filters",
			"Belay-certified badges",
		},
		Icon: "user-plus",
	},
}

var Benefits = []model.Benefit{
	{
		Title:       "Boost Engagement",
		Description: "Give members a reason to open your app between sessions, not just on the way in.",
		Icon:        "trending-up",
	},
	{
		Title:       "Build Community",
		Description: "Turn strangers on the mats into belay partners, teammates and friends.",
		Icon:        "heart",
	},
	{
		Title:       "Reduce Churn",
		Description: "Climbers who feel connected renew. Community is your best retention tool.",
		Icon:        "refresh",
	},
	{
		Title:       "Tailored for Climbing",
		Description: "Grades, walls, resets and scorecards are built in, not bolted on.",
		Icon:        "mountain",
	},
}

var Stats = []model.Stat{
	{Value: len(Features), Label: "Core Modules"},
	{Value: 100, Label: "% Climbing Focus"},
	{Value: 1, Label: "Platform"},
}

// GlitchWords cycle in the hero. The first one is rendered server-side.
var GlitchWords = []string{"community", "connection", "competition", "belonging", "engagement"}

// FeatureByID looks up a catalogue entry.
func FeatureByID(id string) (model.Feature, bool) {
	for _, f := range Features {
		if f.ID == id {
			return f, true
		}
	}
	return model.Feature{}, false
}

// icons holds 24x24 outline path data.
var icons = map[string]string{
	"chat":        "M8 10h.01M12 10h.01M16 10h.01M21 12c0 4.418-4.03 8-9 8a9.86 9.86 0 01-4-.8L3 20l1.4-3.7A7.96 7.96 0 013 12c0-4.418 4.03-8 9-8s9 3.582 9 8z",
	"users":       "M17 20h5v-2a3 3 0 00-5.36-1.86M17 20H7m10 0v-2c0-.66-.13-1.28-.36-1.86M7 20H2v-2a3 3 0 015.36-1.86M7 20v-2c0-.66.13-1.28.36-1.86m0 0a5 5 0 019.28 0M15 7a3 3 0 11-6 0 3 3 0 016 0z",
	"trophy":      "M8 21h8m-4-4v4m-5-17h10v5a5 5 0 01-10 0V4zM5 4H3v2a3 3 0 003 3m13-5h2v2a3 3 0 01-3 3",
	"news":        "M19 20H5a2 2 0 01-2-2V6a2 2 0 012-2h10a2 2 0 012 2v1m2 13a2 2 0 01-2-2V7m2 13a2 2 0 002-2V9a2 2 0 00-2-2h-2m-4-3H9M7 16h6M7 8h6v4H7V8z",
	"chart":       "M9 19v-6a2 2 0 00-2-2H5a2 2 0 00-2 2v6a2 2 0 002 2h2a2 2 0 002-2zm0 0V9a2 2 0 012-2h2a2 2 0 012 2v10m-6 0a2 2 0 002 2h2a2 2 0 002-2m0 0V5a2 2 0 012-2h2a2 2 0 012 2v14a2 2 0 01-2 2h-2a2 2 0 01-2-2z",
	"user-plus":   "M18 9v3m0 0v3m0-3h3m-3 0h-3m-2-5a4 4 0 11-8 0 4 4 0 018 0zM3 20a6 6 0 0112 0v1H3v-1z",
	"trending-up": "M13 7h8m0 0v8m0-8l-8 8-4-4-6 6",
	"heart":       "M4.318 6.318a4.5 4.5 0 000 6.364L12 20.364l7.682-7.682a4.5 4.5 0 00-6.364-6.364L12 7.636l-1.318-1.318a4.5 4.5 0 00-6.364 0z",
	"refresh":     "M4 4v5h.582m15.356 2A8.001 8.001 0 004.582 9m0 0H9m11 11v-5h-.581m0 0a8.003 8.003 0 01-15.357-2m15.357 2H15",
	"mountain":    "M3 20l6-11 4 7 3-5 5 9H3z",
	"sun":         "M12 3v1m0 16v1m9-9h-1M4 12H3m15.364 6.364l-.707-.707M6.343 6.343l-.707-.707m12.728 0l-.707.707M6.343 17.657l-.707.707M16 12a4 4 0 11-8 0 4 4 0 018 0z",
	"moon":        "M20.354 15.354A9 9 0 018.646 3.646 9.003 9.003 0 0012 21a9.003 9.003 0 008.354-5.646z",
	"x":           "M6 18L18 6M6 6l12 12",
	"chevron":     "M19 9l-7 7-7-7",
	"arrow-left":  "M10 19l-7-7m0 0l7-7m-7 7h18",
}

func icon(name string) string {
	return icons[name]
}

// accents rotate through the feature cards.
var accents = []string{
	"hover:border-sky-500 dark:hover:border-sky-400",
	"hover:border-emerald-500 dark:hover:border-emerald-400",
	"hover:border-amber-500 dark:hover:border-amber-400",
	"hover:border-rose-500 dark:hover:border-rose-400",
	"hover:border-violet-500 dark:hover:border-violet-400",
	"hover:border-teal-500 dark:hover:border-teal-400",
}

func accent(i int) string {
	return accents[i%len(accents)]
}
