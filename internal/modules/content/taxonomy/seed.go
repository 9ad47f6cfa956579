package taxonomy

type categorySeed struct {
	Name         string
	Slug         string
	Description  string
	DisplayOrder int
}

type descriptorSeed struct {
	Type string
	Name string
	Slug string
}

// categorySeeds is the closed category vocabulary, 46 entries. The pipeline
// never invents categories outside this list.
var categorySeeds = []categorySeed{
	{"Portrait", "portrait", "Human faces, figures, headshots, and character art", 1},
	{"Fashion & Style", "fashion-style", "Clothing, shoes, accessories, and runway imagery", 2},
	{"Landscape & Nature", "landscape-nature", "Mountains, forests, oceans, weather, and natural scenery", 3},
	{"Urban & City", "urban-city", "Streets, skylines, architecture, and city nightscapes", 4},
	{"Sci-Fi & Futuristic", "sci-fi-futuristic", "Space, cyberpunk, technology, and robots", 5},
	{"Fantasy & Mythical", "fantasy-mythical", "Magic, dragons, medieval, and enchanted worlds", 6},
	{"Wildlife & Nature Animals", "wildlife-nature-animals", "Pets, wild animals, birds, and underwater creatures", 7},
	{"Interior & Architecture", "interior-architecture", "Rooms, buildings, and structural design", 8},
	{"Abstract & Artistic", "abstract-artistic", "Patterns, shapes, surreal, and texture-based art", 9},
	{"Food & Drink", "food-drink", "Cuisine, beverages, and culinary photography", 10},
	{"Vehicles & Transport", "vehicles-transport", "Cars, planes, motorcycles, and ships", 11},
	{"Horror & Dark", "horror-dark", "Creepy, gothic, and dark-themed imagery", 12},
	{"Anime & Manga", "anime-manga", "Japanese animation and manga art styles", 13},
	{"Photorealistic", "photorealistic", "Hyper-realistic, photography-like renders", 14},
	{"Digital Art", "digital-art", "3D renders, CGI, and digital painting", 15},
	{"Illustration", "illustration", "Hand-drawn style, sketches, and cartoons", 16},
	{"Product & Commercial", "product-commercial", "Product shots, advertising, and commercial imagery", 17},
	{"Sports & Action", "sports-action", "Athletics, movement, and competition", 18},
	{"Music & Entertainment", "music-entertainment", "Instruments, concerts, and performers", 19},
	{"Retro & Vintage", "retro-vintage", "Nostalgic, old-school, and film grain aesthetics", 20},
	{"Minimalist", "minimalist", "Clean, simple, and whitespace-focused designs", 21},
	{"Macro & Close-up", "macro-closeup", "Extreme detail and close-up shots", 22},
	{"Text & Typography", "text-typography", "Lettering, logos, and word art", 24},
	{"Comedy & Humor", "comedy-humor", "Funny, comedic, and meme-style content", 25},
	{"Wedding & Engagement", "wedding-engagement", "Weddings, engagement shoots, bridal, rings, proposals", 26},
	{"Couple & Romance", "couple-romance", "Romantic couples, love themes, date imagery", 27},
	{"Group & Crowd", "group-crowd", "Multiple people as the subject", 28},
	{"Cosplay", "cosplay", "Costume play, character recreation", 29},
	{"Tattoo & Body Art", "tattoo-body-art", "Tattoos, body paint, body modification as focus", 30},
	{"Underwater", "underwater", "Underwater photography and art", 31},
	{"Aerial & Drone View", "aerial-drone-view", "Bird's-eye, overhead, satellite perspectives", 32},
	{"Concept Art", "concept-art", "Pre-production art, environment and character concepts", 33},
	{"Wallpaper & Background", "wallpaper-background", "Images designed as device wallpapers or backgrounds", 34},
	{"Character Design", "character-design", "Original character creation, character sheets", 35},
	{"Pixel Art", "pixel-art", "Pixel-based art style", 36},
	{"3D Render", "3d-render", "3D modeled and rendered imagery", 37},
	{"Watercolor & Traditional", "watercolor-traditional", "Traditional art media such as watercolor, oil, and pencil", 38},
	{"Surreal & Dreamlike", "surreal-dreamlike", "Surrealism, impossible scenes, dreamscapes", 39},
	{"AI Influencer / AI Avatar", "ai-influencer-ai-avatar", "Polished virtual influencer and avatar portraits", 40},
	{"Headshot", "headshot", "Shoulders-up professional and casting portraits", 41},
	{"Boudoir", "boudoir", "Intimate, lingerie-focused photography genre", 42},
	{"YouTube Thumbnail / Cover Art", "youtube-thumbnail-cover-art", "Bold, eye-catching thumbnail and cover designs", 43},
	{"Pets & Domestic Animals", "pets-domestic-animals", "Pet portraits, dogs, cats, horses, domestic animal photography", 44},
	{"Maternity Shoot", "maternity-shoot", "Styled pregnancy photography with flowing gowns and dreamy lighting", 45},
	{"3D Photo / Forced Perspective", "3d-photo-forced-perspective", "Fisheye, depth-layered compositions for parallax effect", 46},
	{"Photo Restoration", "photo-restoration", "AI-restored, colorized, or enhanced old photographs", 47},
}

// descriptorSeeds is the closed descriptor vocabulary, 109 entries across
// ten types.
var descriptorSeeds = []descriptorSeed{
	{"gender", "Male", "male"},
	{"gender", "Female", "female"},
	{"gender", "Androgynous", "androgynous"},

	{"ethnicity", "African-American / Black", "african-american-black"},
	{"ethnicity", "African", "african"},
	{"ethnicity", "Hispanic / Latino", "hispanic-latino"},
	{"ethnicity", "East Asian", "east-asian"},
	{"ethnicity", "South Asian / Indian / Desi", "south-asian-indian-desi"},
	{"ethnicity", "Southeast Asian", "southeast-asian"},
	{"ethnicity", "Middle Eastern / Arab", "middle-eastern-arab"},
	{"ethnicity", "Caucasian / White", "caucasian-white"},
	{"ethnicity", "Indigenous / Native", "indigenous-native"},
	{"ethnicity", "Pacific Islander", "pacific-islander"},
	{"ethnicity", "Mixed / Multiracial", "mixed-multiracial"},

	{"age", "Baby / Infant", "baby-infant"},
	{"age", "Child", "child"},
	{"age", "Teen", "teen"},
	{"age", "Young Adult", "young-adult"},
	{"age", "Middle-Aged", "middle-aged"},
	{"age", "Senior / Elderly", "senior-elderly"},

	{"features", "Vitiligo", "vitiligo"},
	{"features", "Albinism", "albinism"},
	{"features", "Heterochromia", "heterochromia"},
	{"features", "Freckles", "freckles"},
	{"features", "Natural Hair / Afro", "natural-hair-afro"},
	{"features", "Braids / Locs", "braids-locs"},
	{"features", "Hijab / Headscarf", "hijab-headscarf"},
	{"features", "Bald / Shaved Head", "bald-shaved-head"},
	{"features", "Glasses / Eyewear", "glasses-eyewear"},
	{"features", "Beard / Facial Hair", "beard-facial-hair"},
	{"features", "Colorful / Dyed Hair", "colorful-dyed-hair"},
	{"features", "Wheelchair User", "wheelchair-user"},
	{"features", "Prosthetic", "prosthetic"},
	{"features", "Scarring", "scarring"},
	{"features", "Plus Size / Curvy", "plus-size-curvy"},
	{"features", "Athletic / Muscular", "athletic-muscular"},
	{"features", "Pregnancy / Maternity", "pregnancy-maternity"},

	{"profession", "Military / Armed Forces", "military-armed-forces"},
	{"profession", "Healthcare / Medical", "healthcare-medical"},
	{"profession", "First Responder", "first-responder"},
	{"profession", "Chef / Culinary", "chef-culinary"},
	{"profession", "Business / Executive", "business-executive"},
	{"profession", "Scientist / Lab", "scientist-lab"},
	{"profession", "Artist / Creative", "artist-creative"},
	{"profession", "Teacher / Education", "teacher-education"},
	{"profession", "Athlete / Sports", "athlete-sports"},
	{"profession", "Construction / Blue Collar", "construction-blue-collar"},
	{"profession", "Pilot / Aviation", "pilot-aviation"},
	{"profession", "Musician / Performer", "musician-performer"},
	{"profession", "Royal / Regal", "royal-regal"},
	{"profession", "Warrior / Knight", "warrior-knight"},
	{"profession", "Astronaut", "astronaut"},
	{"profession", "Cowboy / Western", "cowboy-western"},
	{"profession", "Ninja / Samurai", "ninja-samurai"},

	{"mood", "Dark & Moody", "dark-moody"},
	{"mood", "Bright & Cheerful", "bright-cheerful"},
	{"mood", "Dreamy / Ethereal", "dreamy-ethereal"},
	{"mood", "Cinematic", "cinematic"},
	{"mood", "Dramatic", "dramatic"},
	{"mood", "Peaceful / Serene", "peaceful-serene"},
	{"mood", "Romantic", "romantic"},
	{"mood", "Mysterious", "mysterious"},
	{"mood", "Energetic", "energetic"},
	{"mood", "Melancholic", "melancholic"},
	{"mood", "Whimsical", "whimsical"},
	{"mood", "Eerie / Unsettling", "eerie-unsettling"},
	{"mood", "Sensual / Alluring", "sensual-alluring"},
	{"mood", "Professional / Corporate", "professional-corporate"},
	{"mood", "Vintage / Aged Film", "vintage-aged-film"},

	{"color", "Warm Tones", "warm-tones"},
	{"color", "Cool Tones", "cool-tones"},
	{"color", "Monochrome", "monochrome"},
	{"color", "Neon / Vibrant", "neon-vibrant"},
	{"color", "Pastel", "pastel"},
	{"color", "Earth Tones", "earth-tones"},
	{"color", "High Contrast", "high-contrast"},
	{"color", "Muted / Desaturated", "muted-desaturated"},
	{"color", "Dark / Low-Key", "dark-low-key"},
	{"color", "Gold & Luxury", "gold-luxury"},

	{"holiday", "Valentine's Day", "valentines-day"},
	{"holiday", "Christmas", "christmas"},
	{"holiday", "Halloween", "halloween"},
	{"holiday", "Easter", "easter"},
	{"holiday", "Thanksgiving", "thanksgiving"},
	{"holiday", "New Year", "new-year"},
	{"holiday", "Independence Day", "independence-day"},
	{"holiday", "St. Patrick's Day", "st-patricks-day"},
	{"holiday", "Lunar New Year", "lunar-new-year"},
	{"holiday", "Día de los Muertos", "dia-de-los-muertos"},
	{"holiday", "Mother's Day", "mothers-day"},
	{"holiday", "Father's Day", "fathers-day"},
	{"holiday", "Pride", "pride"},
	{"holiday", "Holi", "holi"},
	{"holiday", "Diwali", "diwali"},
	{"holiday", "Eid", "eid"},
	{"holiday", "Hanukkah", "hanukkah"},

	{"season", "Spring", "spring"},
	{"season", "Summer", "summer"},
	{"season", "Autumn / Fall", "autumn-fall"},
	{"season", "Winter", "winter"},

	{"setting", "Studio / Indoor", "studio-indoor"},
	{"setting", "Outdoor / Nature", "outdoor-nature"},
	{"setting", "Urban / Street", "urban-street"},
	{"setting", "Beach / Coastal", "beach-coastal"},
	{"setting", "Mountain", "mountain"},
	{"setting", "Desert", "desert"},
	{"setting", "Forest / Woodland", "forest-woodland"},
	{"setting", "Space / Cosmic", "space-cosmic"},
	{"setting", "Underwater", "underwater"},
}

// PlatformNames maps platform identifiers to display names, used for
// fallback titles when vision analysis is unavailable.
var PlatformNames = map[string]string{
	"midjourney":         "Midjourney",
	"dalle3":             "DALL-E 3",
	"dalle2":             "DALL-E 2",
	"stable-diffusion":   "Stable Diffusion",
	"leonardo-ai":        "Leonardo AI",
	"flux":               "Flux",
	"sora":               "Sora",
	"sora2":              "Sora 2",
	"veo3":               "Veo 3",
	"adobe-firefly":      "Adobe Firefly",
	"bing-image-creator": "Bing Image Creator",
	"grok":               "Grok",
	"wan21":              "Wan 2.1",
	"wan22":              "Wan 2.2",
	"nano-banana":        "Nano Banana",
	"nano-banana-pro":    "Nano Banana Pro",
}

// PlatformDisplayName returns a human readable platform name, falling back
// to "AI" for unknown platforms.
func PlatformDisplayName(platform string) string {
	if name, ok := PlatformNames[platform]; ok {
		return name
	}
	return "AI"
}
