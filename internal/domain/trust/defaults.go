package trust

// Built-in reference data. Entries are lowercase; duplicates collapse when a
// Resolver is built.

var defaultLegitimateDomains = []string{
	// Tech giants and their services
	"google.com", "youtube.com", "gmail.com", "gstatic.com", "googleapis.com", "googleusercontent.com",
	"facebook.com", "fb.com", "fbcdn.net", "twitter.com", "x.com", "twimg.com",
	"instagram.com", "cdninstagram.com", "linkedin.com", "licdn.com",
	"microsoft.com", "microsoftonline.com", "windows.com", "live.com", "msn.com", "bing.com", "office.com", "office365.com",
	"apple.com", "icloud.com", "me.com", "apple.news", "cdn-apple.com",
	"amazon.com", "amazonws.com", "awsstatic.com", "cloudfront.net", "netflix.com", "nflximg.net",

	// Social media and communication
	"whatsapp.com", "telegram.org", "t.me", "discord.com", "discordapp.com", "discord.gg",
	"reddit.com", "redd.it", "redditmedia.com", "pinterest.com", "pinimg.com",
	"tumblr.com", "snapchat.com", "tiktok.com", "zoom.us", "zoomgov.com", "slack.com", "slack-edge.com",
	"skype.com", "teams.microsoft.com", "messenger.com", "signal.org",

	// Development
	"github.com", "githubusercontent.com", "github.io", "gitlab.com", "bitbucket.org",
	"stackoverflow.com", "stackexchange.com", "serverfault.com", "superuser.com",
	"w3schools.com", "w3.org", "mozilla.org", "firefox.com", "mdn.io",
	"npmjs.com", "npm.io", "nodejs.org", "docker.com", "docker.io", "kubernetes.io",
	"jenkins.io", "atlassian.com", "jira.com", "confluence.com",
	"codepen.io", "jsfiddle.net", "replit.com", "glitch.com", "codesandbox.io",

	// Cloud storage
	"dropbox.com", "dropboxusercontent.com", "box.com", "onedrive.com", "sharepoint.com",
	"drive.google.com", "docs.google.com", "sheets.google.com",
	"wetransfer.com", "mediafire.com", "mega.nz", "mega.io",

	// Retail
	"ebay.com", "ebaystatic.com", "alibaba.com", "aliexpress.com", "alicdn.com",
	"etsy.com", "etsystatic.com", "shopify.com", "myshopify.com", "shopifycdn.com",
	"walmart.com", "target.com", "bestbuy.com", "costco.com", "homedepot.com",
	"ikea.com", "zara.com", "hm.com", "nike.com", "adidas.com",

	// Financial
	"paypal.com", "paypalobjects.com", "stripe.com", "square.com", "venmo.com",
	"chase.com", "bankofamerica.com", "wellsfargo.com", "citibank.com", "usbank.com",
	"capitalone.com", "americanexpress.com", "discover.com", "ally.com",
	"wise.com", "transferwise.com", "revolut.com", "n26.com", "monzo.com",

	// News
	"cnn.com", "cnn.it", "bbc.com", "bbc.co.uk", "nytimes.com", "nyt.com",
	"theguardian.com", "guardian.co.uk", "reuters.com", "apnews.com", "npr.org",
	"bloomberg.com", "forbes.com", "wsj.com", "ft.com", "economist.com",
	"washingtonpost.com", "usatoday.com", "time.com", "newsweek.com",
	"techcrunch.com", "theverge.com", "wired.com", "arstechnica.com", "engadget.com",

	// Education
	"wikipedia.org", "wikimedia.org", "wikidata.org", "mediawiki.org",
	"coursera.org", "udemy.com", "udacity.com", "khanacademy.org", "edx.org", "skillshare.com",
	"mit.edu", "stanford.edu", "harvard.edu", "yale.edu", "princeton.edu",
	"berkeley.edu", "caltech.edu", "columbia.edu", "cornell.edu", "upenn.edu",
	"oxford.ac.uk", "cambridge.ac.uk", "imperial.ac.uk", "ucl.ac.uk",

	// Search
	"yahoo.com", "duckduckgo.com", "baidu.com", "yandex.com", "yandex.ru",
	"ask.com", "aol.com", "search.yahoo.com",

	// Streaming
	"spotify.com", "scdn.co", "soundcloud.com", "bandcamp.com", "pandora.com",
	"twitch.tv", "vimeo.com", "dailymotion.com", "hulu.com", "disneyplus.com",
	"hbomax.com", "hbo.com", "peacocktv.com", "paramountplus.com", "crunchyroll.com",
	"imdb.com", "rottentomatoes.com", "metacritic.com",

	// Gaming
	"steam.com", "steamcommunity.com", "steampowered.com", "steamstatic.com",
	"epicgames.com", "unrealengine.com", "roblox.com", "rbxcdn.com",
	"minecraft.net", "mojang.com", "ea.com", "origin.com",
	"blizzard.com", "battle.net", "activision.com", "ubisoft.com",
	"nintendo.com", "playstation.com", "xbox.com", "riotgames.com", "leagueoflegends.com",

	// Productivity
	"notion.so", "notion.site", "trello.com", "asana.com", "monday.com",
	"evernote.com", "todoist.com", "airtable.com", "miro.com", "figma.com",
	"canva.com", "grammarly.com", "lastpass.com", "1password.com", "bitwarden.com",

	// AI
	"openai.com", "chat.openai.com", "anthropic.com", "claude.ai",
	"huggingface.co", "kaggle.com", "colab.research.google.com",
	"deepmind.com", "midjourney.com", "stability.ai", "perplexity.ai",

	// Hosting and CDN platforms
	"vercel.com", "vercel.app", "netlify.com", "netlify.app", "heroku.com", "herokuapp.com",
	"digitalocean.com", "linode.com", "vultr.com", "cloudflare.com", "cloudflare.net",
	"fastly.com", "fastly.net", "akamai.com", "akamaized.net",
	"jsdelivr.net", "unpkg.com", "cdnjs.cloudflare.com", "bootstrapcdn.com",

	// Business
	"salesforce.com", "force.com", "oracle.com", "sap.com", "ibm.com",
	"adobe.com", "adobelogin.com", "intuit.com", "quickbooks.com",
	"zendesk.com", "mailchimp.com", "hubspot.com",
	"wordpress.com", "wordpress.org", "wp.com", "automattic.com",
	"squarespace.com", "wix.com", "weebly.com", "godaddy.com",

	// Email
	"outlook.com", "hotmail.com", "protonmail.com", "proton.me",
	"mail.com", "zoho.com",

	// Government and organizations
	"gov", "gov.uk", "gov.au", "gov.ca", "gov.in", "gouv.fr",
	"europa.eu", "un.org", "who.int", "nasa.gov", "space.gov",
	"nih.gov", "cdc.gov", "fda.gov", "nist.gov",

	// Startups
	"ycombinator.com", "airbnb.com", "coinbase.com",
	"doordash.com", "instacart.com", "robinhood.com",

	// Other popular sites
	"medium.com", "substack.com", "quora.com", "tripadvisor.com", "yelp.com",
	"indeed.com", "glassdoor.com", "craigslist.org", "weather.com", "accuweather.com",
	"tesla.com", "spacex.com", "booking.com", "expedia.com",

	// Infrastructure
	"akamaihd.net", "edgecastcdn.net", "azureedge.net",
	"ytimg.com", "ggpht.com",
}

var defaultTrustedSubdomains = map[string][]string{
	"google.com": {"accounts", "mail", "drive", "docs", "sheets", "slides", "forms", "scholar", "maps", "calendar",
		"photos", "play", "cloud", "firebase", "analytics", "ads", "support", "sites", "translate",
		"news", "books", "hangouts", "meet", "chat", "classroom", "keep", "contacts", "voice",
		"finance", "shopping", "trends", "patents", "alerts", "podcasts", "myaccount"},
	"microsoft.com": {"login", "account", "outlook", "office", "azure", "docs", "support", "answers", "download",
		"store", "technet", "msdn", "developer", "learn", "visualstudio", "devblogs"},
	"microsoftonline.com": {"login", "account", "portal", "auth", "secure", "www", "common", "aad", "graph",
		"admin", "compliance", "security", "teams"},
	"apple.com": {"support", "icloud", "appleid", "developer", "store", "www", "music", "tv", "news",
		"podcasts", "books", "finance", "maps", "discussions"},
	"amazon.com": {"aws", "smile", "music", "prime", "video", "www", "read", "kdp", "associates",
		"s3", "cloudfront", "console", "developer"},
	"facebook.com":   {"www", "web", "business", "developers", "m", "l", "secure", "touch", "upload"},
	"github.com":     {"gist", "raw", "api", "docs", "help", "pages", "status", "blog", "education", "enterprise", "desktop", "mobile", "cli"},
	"gitlab.com":     {"about", "docs", "forum", "status", "customers", "learn"},
	"twitter.com":    {"mobile", "help", "support", "developer", "api", "analytics", "ads", "business"},
	"linkedin.com":   {"www", "help", "business", "learning", "sales", "talent", "marketing"},
	"instagram.com":  {"www", "help", "about", "business", "developers"},
	"reddit.com":     {"www", "old", "new", "mod", "blog", "support"},
	"youtube.com":    {"www", "studio", "music", "tv", "gaming", "kids", "artists", "creators"},
	"netflix.com":    {"www", "help", "devices", "media", "jobs"},
	"spotify.com":    {"www", "open", "accounts", "support", "artists", "developers", "news"},
	"dropbox.com":    {"www", "paper", "help", "business", "developers"},
	"slack.com":      {"api", "status", "help", "slack-redir"},
	"zoom.us":        {"www", "support", "marketplace", "developers", "blog"},
	"discord.com":    {"support", "status", "blog", "developers", "merch"},
	"paypal.com":     {"www", "business", "developer", "support"},
	"stripe.com":     {"dashboard", "docs", "support", "status", "blog"},
	"salesforce.com": {"login", "help", "developer", "trailhead", "appexchange"},
	"adobe.com":      {"www", "helpx", "creative", "stock", "fonts", "account"},
	"notion.so":      {"www", "help", "developers"},
	"figma.com":      {"www", "help", "forum", "community"},
	"canva.com":      {"www", "help", "about", "design"},
	"atlassian.com":  {"www", "support", "community", "developer", "marketplace"},
	"firefox.com":    {"accounts", "support", "addons", "www", "developer", "monitor"},
	"yahoo.com":      {"mail", "finance", "sports", "news", "help", "search", "weather"},
	"medium.com":     {"help", "blog", "policy", "jobs"},
	"wordpress.com":  {"wordpress", "en", "blog", "support", "developer"},
	"shopify.com":    {"www", "help", "community", "developers", "partners", "apps"},
	"twitch.tv":      {"www", "help", "dev", "blog", "safety"},
	"vimeo.com":      {"vimeo", "help", "developer", "stock"},
}

var defaultEducationalSuffixes = []string{".edu", ".ac.uk", ".ac.jp", ".edu.au", ".edu.cn"}

const defaultGovernmentSuffix = ".gov"

var defaultURLShorteners = []string{
	"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly", "is.gd", "buff.ly",
	"adf.ly", "bit.do", "short.link", "rb.gy", "cutt.ly", "tiny.cc",
	"shorturl.at", "clck.ru",
}

var defaultSuspiciousTLDs = []string{
	"tk", "ml", "ga", "cf", "gq", "xyz", "top", "work", "click", "link",
	"date", "racing", "stream", "party", "trade", "bid",
}

var defaultSuspiciousKeywords = []string{
	"verify", "account", "update", "confirm", "secure", "login", "signin",
	"banking", "suspend", "limited", "alert", "notification", "expire",
	"authenticate", "password", "reset", "unlock", "restore", "recover",
}

// Brand names commonly embedded in impersonating domains
var defaultBrandKeywords = []string{
	"paypal", "google", "facebook", "amazon", "microsoft", "apple",
	"bank", "secure", "login", "account",
}
