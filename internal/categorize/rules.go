package categorize

import "github.com/leaklens/leaklens/internal/model"

// Rule maps a case-insensitive pattern over the merchant key and raw
// description to a category. Rules are evaluated in slice order and the
// first match wins, so specific merchants come before broad keyword
// catch-alls.
type Rule struct {
	Name     string
	Pattern  string
	Category model.Category
}

// DefaultRules returns the built-in rule table. It is ordered: transfer
// and income markers first, then named subscription services, then fee
// keywords, then merchant tables per spending category.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Account Transfers",
			Category: model.CategoryTransfers,
			Pattern:  `TRANSFER TO|TRANSFER FROM|TFR TO|TFR FROM|INTERNAL TRANSFER|OSKO|PAY ANYONE|ZELLE|VENMO|CASHAPP|BETWEEN ACCOUNTS`,
		},
		{
			Name:     "Salary & Benefits",
			Category: model.CategoryIncome,
			Pattern:  `SALARY|PAYROLL|WAGES?\b|DIRECT CREDIT|EMPLOYER|INTEREST EARNED|DIVIDEND|TAX REFUND|CENTRELINK|PENSION|BONUS PAY`,
		},
		{
			Name:     "Streaming Services",
			Category: model.CategorySubscriptions,
			Pattern:  `NETFLIX|SPOTIFY|HULU|DISNEY|HBO MAX|AMAZON PRIME|APPLE MUSIC|YOUTUBE PREMIUM|PARAMOUNT|PEACOCK|AUDIBLE|STAN\b|BINGE|KAYO|FOXTEL|CRUNCHYROLL|DAZN`,
		},
		{
			Name:     "Software Subscriptions",
			Category: model.CategorySubscriptions,
			Pattern:  `ADOBE|MICROSOFT 365|GOOGLE ONE|DROPBOX|ICLOUD|CANVA|NOTION|SLACK|ZOOM\b|GITHUB|CHATGPT|OPENAI|CLAUDE`,
		},
		{
			Name:     "Memberships",
			Category: model.CategorySubscriptions,
			Pattern:  `PLANET FITNESS|LA FITNESS|ANYTIME FITNESS|EQUINOX|CROSSFIT|PELOTON|GYM MEMBERSHIP|F45|ORANGETHEORY|ONLYFANS|PATREON|TWITCH|SUBSTACK|HEADSPACE|CALM\b|NOOM|HELLO FRESH|BLUE APRON|AFTERPAY|KLARNA|ZIP PAY|AFFIRM|SEZZLE`,
		},
		{
			Name:     "Bank Fees",
			Category: model.CategoryFees,
			Pattern:  `\bFEE\b|OVERDRAFT|SERVICE CHARGE|MAINTENANCE|FOREIGN TRANSACTION|INTEREST CHARGE|FINANCE CHARGE|ATM FEE|ACCOUNT KEEPING|DISHONOUR|OVERDRAWN|NSF`,
		},
		{
			Name:     "Supermarkets",
			Category: model.CategoryGroceries,
			Pattern:  `WOOLWORTHS|COLES|ALDI|IGA\b|COSTCO|KROGER|SAFEWAY|PUBLIX|WHOLE FOODS|TRADER JOE|WEGMANS|SPROUTS|TESCO|SAINSBURY|ASDA|MORRISONS|LIDL|SUPERMARKET|GROCER`,
		},
		{
			Name:     "Food Delivery",
			Category: model.CategoryDining,
			Pattern:  `UBER\s?EATS|DOORDASH|MENULOG|DELIVEROO|GRUBHUB|POSTMATES|SEAMLESS|JUST EAT|SKIP THE DISHES|INSTACART|GOPUFF`,
		},
		{
			Name:     "Restaurants & Cafes",
			Category: model.CategoryDining,
			Pattern:  `MCDONALD|BURGER KING|WENDY|TACO BELL|KFC\b|CHICK-FIL-A|SUBWAY|CHIPOTLE|DOMINO|PIZZA HUT|FIVE GUYS|SHAKE SHACK|STARBUCKS|DUNKIN|PRET\b|TIM HORTONS|RESTAURANT|CAFE|DINER|PIZZERIA|SUSHI|\bBAR\b|\bPUB\b|GRILL`,
		},
		{
			Name:     "Rideshare & Fuel",
			Category: model.CategoryTransport,
			Pattern:  `UBER(?:\s|$)|LYFT|\bTAXI\b|\bCAB\b|SHELL|\bBP\b|CHEVRON|EXXON|MOBIL|CALTEX|SPEEDWAY|PETROL|\bFUEL\b|GAS STATION|PARKING|\bTOLL|E-?TAG|LINKT|TRANSIT|METRO\b|\bBUS\b|\bTRAIN\b|\bRAIL\b|MYKI|OPAL CARD|CLIPPER|CAR WASH|AUTO REPAIR|MECHANIC`,
		},
		{
			Name:     "Retail",
			Category: model.CategoryShopping,
			Pattern:  `AMAZON|EBAY|ETSY|WALMART|TARGET|BEST BUY|KMART|BIG W|MYER|DAVID JONES|MACY|NORDSTROM|KOHL|TJ MAXX|\bROSS\b|MARSHALLS|IKEA|HOME DEPOT|LOWE'?S|BUNNINGS|OFFICEWORKS|STAPLES|APPLE STORE|NIKE|ADIDAS|ZARA|H&M|UNIQLO|\bGAP\b|OLD NAVY|SHEIN|ASOS|SEPHORA|ULTA|CHEMIST|CVS\b|WALGREENS|PRICELINE`,
		},
		{
			Name:     "Utilities & Insurance",
			Category: model.CategoryUtilities,
			Pattern:  `ELECTRIC|POWER CO|ENERGY|GAS BILL|WATER BILL|AGL\b|ORIGIN ENERGY|PG&E|CON EDISON|DUKE ENERGY|INTERNET|BROADBAND|NBN\b|COMCAST|XFINITY|AT&T|VERIZON|T-MOBILE|TELSTRA|OPTUS|VODAFONE|PHONE BILL|MOBILE PLAN|INSURANCE|GEICO|STATE FARM|ALLSTATE|PROGRESSIVE|NRMA|AAMI|SUNCORP|\bRENT\b|MORTGAGE|HOME LOAN|COUNCIL RATES|STRATA`,
		},
		{
			Name:     "Health & Fitness",
			Category: model.CategoryHealth,
			Pattern:  `PHARMACY|DOCTOR|MEDICAL|HOSPITAL|CLINIC|DENTAL|DENTIST|OPTOMETRIST|PHYSIO|CHIROPRACTOR|MASSAGE|VITAMIN|MEDIBANK|BUPA|\bNIB\b|\bHCF\b|UNITED HEALTH|CIGNA|AETNA|HUMANA|KAISER`,
		},
		{
			Name:     "Entertainment",
			Category: model.CategoryEntertainment,
			Pattern:  `CINEMA|MOVIE|THEATRE|THEATER|\bAMC\b|REGAL|HOYTS|CONCERT|TICKETMASTER|LIVE NATION|EVENTBRITE|STUBHUB|STEAM\b|PLAYSTATION|XBOX|NINTENDO|EPIC GAMES|APP STORE|GOOGLE PLAY|ITUNES|KINDLE|BOWLING|ARCADE|MUSEUM|\bZOO\b|AQUARIUM|THEME PARK`,
		},
		{
			Name:     "Travel",
			Category: model.CategoryTravel,
			Pattern:  `AIRLINE|FLIGHT|QANTAS|JETSTAR|VIRGIN A|UNITED AIR|DELTA AIR|AMERICAN AIR|SOUTHWEST|BRITISH AIRWAYS|LUFTHANSA|EMIRATES|HOTEL|MOTEL|AIRBNB|VRBO|BOOKING\.COM|EXPEDIA|MARRIOTT|HILTON|HYATT|CAR RENTAL|HERTZ|AVIS|ENTERPRISE RENT|CRUISE`,
		},
		{
			Name:     "Generic Fees",
			Category: model.CategoryFees,
			Pattern:  `CHARGE`,
		},
	}
}
