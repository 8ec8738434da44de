package vocab

// Word is one row of the built-in vocabulary table.
type Word struct {
	Word  string
	Key   string // Grammatical tag
	Emoji string
}

// Words is the built-in vocabulary, alphabetical.
var Words = []Word{
	{"above", "prep", "☁️"},
	{"address", "n", "🏠📍"},
	{"afraid", "adj", "😨"},
	{"after", "prep", "⏭️"},
	{"all right", "adj+adv", "👌"},
	{"always", "adv", "♾️"},
	{"another", "det+pron", "➕1️⃣"},
	{"any", "det+pron", "🤷"},
	{"app", "n", "📲"},
	{"around", "prep", "🎡"},
	{"asleep", "adj", "😴"},
	{"awake", "adj", "👀"},
	{"back", "n", "🔙"},
	{"badly", "adv", "🤕"},
	{"balcony", "n", "🏢"},
	{"basement", "n", "🔦"},
	{"bat", "n", "🦇"},
	{"beard", "n", "🧔"},
	{"blanket", "n", "🛌"},
	{"boring", "adj", "😐"},
	{"bottle", "n", "🍼"},
	{"bowl", "n", "🥣"},
	{"brave", "adj", "🦸"},
	{"brilliant", "adj", "💡"},
	{"bring", "v", "🛍️➡️"},
	{"build", "v", "🧱"},
	{"building", "n", "🏗️"},
	{"bus station", "n", "🚏"},
	{"bus stop", "n", "🚌🛑"},
	{"busy", "adj", "🤯"},
	{"buy", "v", "💸"},
	{"cafe", "n", "☕"},
	{"cage", "n", "🔒"},
	{"call", "v", "🤙"},
	{"careful", "adj", "🚧"},
	{"carry", "v", "🎒"},
	{"catch", "v", "👐"},
	{"cheese", "n", "🧀"},
	{"cinema", "n", "🍿"},
	{"circle", "n", "⭕"},
	{"city", "n", "🏙️"},
	{"climb", "v", "🧗"},
	{"cloud", "n", "☁️"},
	{"clown", "n", "🤡"},
	{"coat", "n", "🧥"},
	{"coffee", "n", "☕"},
	{"cold", "adj", "🥶"},
	{"comic book", "n", "🦸‍♂️📖"},
	{"cook", "v", "🍳"},
	{"cough", "n+v", "🤧"},
	{"country", "n", "🏞️"},
	{"cry", "v", "😭"},
	{"cup", "n", "☕"},
	{"curly", "adj", "🌀"},
	{"dance", "v", "🕺"},
	{"dangerous", "adj", "☠️"},
	{"dentist", "n", "🦷👨‍⚕️"},
	{"difficult", "adj", "🧩"},
	{"dolphin", "n", "🐬"},
	{"dream", "n", "💤💭"},
	{"drive", "v", "🚗💨"},
	{"dry", "adj", "🌵"},
	{"earache", "n", "👂🤕"},
	{"elevator", "n", "🛗"},
	{"email", "n+v", "📧"},
	{"exciting", "adj", "🎢"},
	{"famous", "adj", "📸"},
	{"farm", "n", "🚜"},
	{"farmer", "n", "👨‍🌾"},
	{"field", "n", "🌾"},
	{"fish", "n", "🐠"},
	{"fix", "v", "🔧"},
	{"forest", "n", "🌲🌳"},
	{"frightened", "adj", "🙀"},
	{"glass", "n", "🥃"},
	{"goal", "n", "🥅"},
	{"grandparent", "n", "👴👵"},
	{"grass", "n", "🌿"},
	{"ground", "n", "🟫"},
	{"grown-up", "n", "👨‍💼"},
	{"headache", "n", "🤯"},
	{"helmet", "n", "⛑️"},
	{"holiday", "n", "🏖️"},
	{"homework", "n", "📝"},
	{"hospital", "n", "🏥"},
	{"hungry", "adj", "🍽️"},
	{"hurt", "v", "🤕"},
	{"ice", "n", "🧊"},
	{"ice skates", "n", "⛸️"},
	{"internet", "n", "🌐"},
	{"island", "n", "🏝️"},
	{"jungle", "n", "🐒🌿"},
	{"kangaroo", "n", "🦘"},
	{"kick", "v", "🦵⚽"},
	{"kitten", "n", "🐱"},
	{"lake", "n", "🛶"},
	{"laptop", "n", "💻"},
	{"library", "n", "🤫📚"},
	{"lion", "n", "🦁"},
	{"loudly", "adv", "🗣️📢"},
	{"market", "n", "🏪"},
	{"milkshake", "n", "🥤"},
	{"mistake", "n", "❌"},
	{"moon", "n", "🌙"},
	{"mountain", "n", "🏔️"},
	{"moustache", "n", "🧔"},
	{"naughty", "adj", "😈"},
	{"neck", "n", "🦒"},
	{"noise", "n", "🔊"},
	{"noodles", "n", "🍜"},
	{"nurse", "n", "💉"},
	{"opposite", "prep", "🔄"},
	{"outside", "adv", "🏕️"},
	{"pancake", "n", "🥞"},
	{"panda", "n", "🐼"},
	{"penguin", "n", "🐧"},
	{"picnic", "n", "🥪🌳"},
	{"pirate", "n", "🏴‍☠️"},
	{"playground", "n", "🎢"},
	{"pretty", "adj", "💅"},
	{"quick", "adj", "🐆"},
	{"quiet", "adj", "🤫"},
	{"rainbow", "n", "🌈"},
	{"ride", "v", "🚴"},
	{"river", "n", "🏞️"},
	{"road", "n", "🛣️"},
	{"roller skates", "n", "🛼"},
	{"roof", "n", "🏠👆"},
	{"safe", "adj", "👷"},
	{"salad", "n", "🥗"},
	{"sandwich", "n", "🥪"},
	{"sauce", "n", "🥫"},
	{"scarf", "n", "🧣"},
	{"shoulder", "n", "🤷"},
	{"shower", "n", "🚿"},
	{"skate", "v", "⛸️"},
	{"skip", "v", "🪢"},
	{"slowly", "adv", "🐌"},
	{"snail", "n", "🐌"},
	{"snow", "n", "☃️"},
	{"soup", "n", "🥣"},
	{"station", "n", "🚉"},
	{"stomach", "n", "🤢"},
	{"straight", "adj", "📏"},
	{"supermarket", "n", "🛒"},
	{"surprised", "adj", "😲"},
	{"sweater", "n", "🧥"},
	{"swim", "v", "🏊"},
	{"swimsuit", "n", "👙"},
	{"tea", "n", "🍵"},
	{"teach", "v", "👩‍🏫"},
	{"temperature", "n", "🌡️"},
	{"terrible", "adj", "😖"},
	{"text", "n+v", "💬"},
	{"thirsty", "adj", "🥵"},
	{"ticket", "n", "🎫"},
	{"toothache", "n", "🦷⚡"},
	{"toothbrush", "n", "🪥"},
	{"toothpaste", "n", "🧴"},
	{"towel", "n", "🧖"},
	{"tractor", "n", "🚜"},
	{"treasure", "n", "💎"},
	{"uncle", "n", "👨"},
	{"upstairs", "adv", "🪜⬆️"},
	{"vegetable", "n", "🥕"},
	{"video", "n", "📹"},
	{"waterfall", "n", "🏞️💧"},
	{"weak", "adj", "🥀"},
	{"weather", "n", "🌤️"},
	{"website", "n", "🌐"},
	{"whale", "n", "🐋"},
	{"windy", "adj", "💨"},
	{"world", "n", "🌎"},
	{"wrong", "adj", "❌"},
	{"yesterday", "adv", "⏮️📅"},
}

// Default converts the built-in vocabulary into entries whose prompt and
// answer are both the word itself.
func Default() []Entry {
	entries := make([]Entry, len(Words))
	for i, w := range Words {
		entries[i] = Entry{
			Prompt: w.Word,
			Answer: w.Word,
			Glyph:  w.Emoji,
			Tag:    w.Key,
		}
	}
	return entries
}
