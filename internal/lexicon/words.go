package lexicon

import (
	"github.com/capitalize-ai/response-engine/internal/model"
)

// stopWords is the full stop-word list used by Analyze. It covers common
// function words, chat fillers, and polite noise.
var stopWords = map[string]struct{}{}

var stopWordList = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "when",
	"while", "for", "to", "of", "in", "on", "at", "by", "with", "about",
	"against", "between", "into", "through", "during", "before", "after",
	"above", "below", "from", "up", "down", "out", "off", "over", "under",
	"again", "further", "once", "here", "there", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "just", "i", "me", "my", "myself", "we", "our", "ours",
	"ourselves", "you", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "her", "hers", "herself", "it", "its",
	"itself", "they", "them", "their", "theirs", "themselves", "what",
	"which", "who", "whom", "this", "that", "these", "those", "am", "is",
	"are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "will", "would", "shall",
	"should", "can", "could", "may", "might", "must", "ought", "im", "ive",
	"id", "youre", "youve", "youd", "hes", "shes", "its", "were", "weve",
	"theyre", "theyve", "cant", "cannot", "couldnt", "dont", "doesnt",
	"didnt", "wont", "wouldnt", "shouldnt", "isnt", "arent", "wasnt",
	"werent", "havent", "hasnt", "hadnt", "lets", "thats", "whats",
	"heres", "theres", "wheres", "whos", "whens", "whys", "hows",
	"um", "uh", "hmm", "huh", "like", "well", "okay", "ok", "yeah", "yep",
	"nope", "actually", "basically", "literally", "really", "kinda",
	"sorta", "anyway", "anyways", "please", "sorry",
	"excuse", "pardon", "also", "still", "yet",
	"ever", "never", "always", "often", "sometimes", "now", "today",
	"yesterday", "tomorrow", "get", "got", "gets", "getting", "go",
	"going", "gone", "went", "come", "came", "coming", "want", "wanted",
	"need", "needed", "know", "known", "knew", "think", "thought", "say",
	"said", "see", "saw", "seen", "one", "two", "something", "anything",
	"everything", "nothing", "someone", "anyone", "everyone",
}

// scoringStopWords is the lighter stop-word list used by Tokenize for corpus
// scoring. Keeping it small preserves more overlap signal.
var scoringStopWords = map[string]struct{}{}

var scoringStopWordList = []string{
	"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
	"be", "been", "do", "does", "did", "have", "has", "had", "i", "me",
	"my", "you", "your", "it", "its", "we", "they", "this", "that",
	"to", "of", "in", "on", "at", "by", "with", "for", "from", "as",
	"so", "not", "no", "can", "will", "what", "how", "why",
}

// positiveWords and negativeWords drive sentiment detection. The last
// matching keyword in iteration order wins.
var positiveWords = map[string]struct{}{}

var positiveWordList = []string{
	"good", "great", "awesome", "excellent", "amazing", "wonderful",
	"fantastic", "perfect", "love", "loved", "nice", "happy", "glad",
	"pleased", "helpful", "brilliant", "superb", "best", "cool",
	"appreciate", "appreciated", "satisfied", "delighted", "works",
	"working", "solved", "fixed", "resolved",
}

var negativeWords = map[string]struct{}{}

var negativeWordList = []string{
	"bad", "terrible", "awful", "horrible", "hate", "hated", "angry",
	"furious", "annoyed", "annoying", "frustrated", "frustrating",
	"disappointed", "disappointing", "useless", "broken", "broke",
	"worst", "sucks", "crap", "garbage", "ridiculous", "unacceptable",
	"failing", "failed", "fails", "stupid", "wrong", "upset", "sad",
	"unhappy", "slow", "confusing", "stuck",
}

// categoryVocab is the static category vocabulary. Detection scans it in
// slice order and reports each category whose terms occur as a substring of
// the lower-cased message; result order follows this table, not relevance.
var categoryVocab = []struct {
	Category model.Category
	Terms    []string
}{
	{model.CategoryAccount, []string{
		"account", "login", "log in", "logout", "log out", "sign in",
		"signin", "sign up", "signup", "register", "registration",
		"password", "passphrase", "username", "user name", "email address",
		"profile", "avatar", "credentials", "authentication", "verify",
		"verification", "two-factor", "2fa", "locked out", "deactivate",
		"delete my account", "privacy settings", "session expired",
	}},
	{model.CategoryPayment, []string{
		"payment", "pay", "paid", "billing", "bill", "invoice", "charge",
		"charged", "refund", "refunded", "subscription", "subscribe",
		"renewal", "renew", "price", "pricing", "cost", "fee", "credit card",
		"debit card", "card declined", "checkout", "receipt", "transaction",
		"wallet", "balance", "coupon", "discount", "promo code", "paypal",
		"stripe", "upgrade plan", "downgrade", "cancel subscription",
	}},
	{model.CategoryTechnical, []string{
		"error", "bug", "crash", "crashed", "crashing", "freeze", "frozen",
		"glitch", "not working", "doesn't work", "doesnt work", "broken",
		"issue", "problem", "fail", "failed", "failure", "timeout",
		"slow", "lag", "laggy", "loading", "won't load", "wont load",
		"blank screen", "white screen", "404", "500", "server error",
		"connection", "disconnect", "offline", "sync", "syncing",
		"install", "installation", "update failed", "upgrade failed",
		"compatibility", "browser", "cache", "cookies", "api", "endpoint",
	}},
	{model.CategoryFeature, []string{
		"feature", "feature request", "suggestion", "suggest",
		"would be nice", "wish", "roadmap", "enhancement", "improve",
		"improvement",
		"add support", "missing", "could you add", "can you add",
		"dark mode", "integration", "export option", "import option",
		"customize", "customization", "shortcut", "notification settings",
	}},
	{"technology", []string{
		"software", "hardware", "computer", "laptop", "phone", "mobile",
		"android", "ios", "iphone", "windows", "linux", "macos", "app",
		"application", "website", "internet", "wifi", "network", "cloud",
		"database", "server", "programming", "code", "algorithm",
		"artificial intelligence", "machine learning", "robot", "gadget",
		"bluetooth", "usb", "screen", "keyboard", "mouse", "printer",
	}},
	{"science", []string{
		"science", "physics", "chemistry", "biology", "astronomy", "space",
		"planet", "star", "galaxy", "universe", "atom", "molecule", "cell",
		"dna", "evolution", "gravity", "energy", "experiment", "research",
		"theory", "quantum", "climate", "weather", "temperature",
		"ecosystem", "species", "vaccine", "medicine", "laboratory",
	}},
	{"business", []string{
		"business", "company", "startup", "market", "marketing", "sales",
		"revenue", "profit", "investment", "investor", "stock", "shares",
		"economy", "finance", "financial", "budget", "strategy",
		"customer", "client", "partnership", "merger", "acquisition",
		"entrepreneur", "management", "employee", "hiring", "salary",
		"meeting", "deadline", "project", "contract", "negotiation",
	}},
	{"health", []string{
		"health", "doctor", "hospital", "symptom", "illness", "disease",
		"diet", "nutrition", "exercise", "fitness", "workout", "sleep",
		"stress", "anxiety", "mental health", "therapy", "wellness",
		"injury", "pain", "headache", "fever", "allergy",
	}},
	{"education", []string{
		"education", "school", "university", "college", "student",
		"teacher", "professor", "course", "class", "lesson", "homework",
		"exam", "test score", "study", "studying", "learning", "tutorial",
		"degree", "diploma", "scholarship", "lecture", "curriculum",
	}},
	{"travel", []string{
		"travel", "trip", "vacation", "holiday", "flight", "airport",
		"hotel", "booking", "reservation", "destination", "tourist",
		"passport", "visa", "luggage", "itinerary", "beach", "mountain",
		"cruise", "road trip", "sightseeing",
	}},
	{"food", []string{
		"food", "restaurant", "recipe", "cooking", "baking", "meal",
		"breakfast", "lunch", "dinner", "snack", "dessert", "coffee",
		"tea", "pizza", "burger", "vegetarian", "vegan", "ingredient",
		"cuisine", "delicious", "flavor",
	}},
	{"entertainment", []string{
		"movie", "film", "music", "song", "concert", "album", "artist",
		"band", "game", "gaming", "video game", "tv show", "series",
		"episode", "book", "novel", "author", "podcast", "streaming",
		"netflix", "youtube", "celebrity", "theater",
	}},
	{"sports", []string{
		"sport", "sports", "football", "soccer", "basketball", "baseball",
		"tennis", "golf", "hockey", "cricket", "rugby", "swimming",
		"running", "marathon", "olympics", "championship", "tournament",
		"team", "player", "coach", "score", "goal", "match",
	}},
}

func init() {
	for _, w := range stopWordList {
		stopWords[w] = struct{}{}
	}
	for _, w := range scoringStopWordList {
		scoringStopWords[w] = struct{}{}
	}
	for _, w := range positiveWordList {
		positiveWords[w] = struct{}{}
	}
	for _, w := range negativeWordList {
		negativeWords[w] = struct{}{}
	}
}
