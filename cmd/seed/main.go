package main

import (
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"bazaarsetu/internal/config"
	"bazaarsetu/internal/database"
	"bazaarsetu/internal/models"

	"github.com/joho/godotenv"
)

type marketSeed struct {
	name       string
	nameTelugu string
	nameHindi  string
	district   string
	stateCode  string
	lat        float64
	lon        float64
}

type commoditySeed struct {
	name       string
	nameTelugu string
	nameHindi  string
	category   models.CommodityCategory
	basePrice  float64
}

var stateSeeds = []models.State{
	{Name: "Andhra Pradesh", NameTelugu: "ఆంధ్ర ప్రదేశ్", NameHindi: "आंध्र प्रदेश", Code: "AP"},
	{Name: "Telangana", NameTelugu: "తెలంగాణ", NameHindi: "तेलंगाना", Code: "TS"},
}

var marketSeeds = []marketSeed{
	{"Vijayawada", "విజయవాడ", "विजयवाड़ा", "Krishna", "AP", 16.5062, 80.6480},
	{"Visakhapatnam", "విశాఖపట్నం", "विशाखापत्तनम", "Visakhapatnam", "AP", 17.6868, 83.2185},
	{"Guntur", "గుంటూరు", "गुंटूर", "Guntur", "AP", 16.3067, 80.4365},
	{"Tirupati", "తిరుపతి", "तिरुपति", "Chittoor", "AP", 13.6288, 79.4192},
	{"Nellore", "నెల్లూరు", "नेल्लोर", "Nellore", "AP", 14.4426, 79.9865},
	{"Kurnool", "కర్నూలు", "कुरनूल", "Kurnool", "AP", 15.8281, 78.0373},
	{"Rajahmundry", "రాజమండ్రి", "राजमुंदरी", "East Godavari", "AP", 16.9891, 81.7801},
	{"Kadapa", "కడప", "कडपा", "Kadapa", "AP", 14.4673, 78.8242},
	{"Anantapur", "అనంతపురం", "अनंतपुर", "Anantapur", "AP", 14.6819, 77.6006},
	{"Eluru", "ఏలూరు", "एलुरु", "West Godavari", "AP", 16.7107, 81.0952},
	{"Hyderabad", "హైదరాబాద్", "हैदराबाद", "Hyderabad", "TS", 17.3850, 78.4867},
	{"Secunderabad", "సికిందరాబాద్", "सिकंदराबाद", "Hyderabad", "TS", 17.4399, 78.4983},
	{"Warangal", "వరంగల్", "वारंगल", "Warangal", "TS", 17.9689, 79.5941},
	{"Karimnagar", "కరీంనగర్", "करीमनगर", "Karimnagar", "TS", 18.4386, 79.1288},
	{"Nizamabad", "నిజామాబాద్", "निज़ामाबाद", "Nizamabad", "TS", 18.6725, 78.0941},
	{"Khammam", "ఖమ్మం", "खम्मम", "Khammam", "TS", 17.2473, 80.1514},
	{"Mahabubnagar", "మహబూబ్‌నగర్", "महबूबनगर", "Mahabubnagar", "TS", 16.7488, 77.9853},
	{"Nalgonda", "నల్గొండ", "नलगोंडा", "Nalgonda", "TS", 17.0575, 79.2690},
	{"Adilabad", "ఆదిలాబాద్", "आदिलाबाद", "Adilabad", "TS", 19.6640, 78.5320},
	{"Medak", "మెదక్", "मेदक", "Medak", "TS", 18.0469, 78.2600},
}

var commoditySeeds = []commoditySeed{
	{"Tomato", "టమాటా", "टमाटर", models.CategoryVegetable, 40},
	{"Onion", "ఉల్లిపాయ", "प्याज", models.CategoryVegetable, 35},
	{"Potato", "బంగాళాదుంప", "आलू", models.CategoryVegetable, 30},
	{"Green Chilli", "పచ్చిమిర్చి", "हरी मिर्च", models.CategoryVegetable, 80},
	{"Brinjal", "వంకాయ", "बैंगन", models.CategoryVegetable, 45},
	{"Cabbage", "క్యాబేజ్", "पत्ता गोभी", models.CategoryVegetable, 25},
	{"Cauliflower", "కాలీఫ్లవర్", "फूलगोभी", models.CategoryVegetable, 50},
	{"Carrot", "క్యారెట్", "गाजर", models.CategoryVegetable, 55},
	{"Beans", "చిక్కుడు", "फलियां", models.CategoryVegetable, 70},
	{"Lady Finger", "బెండకాయ", "भिंडी", models.CategoryVegetable, 60},
	{"Bottle Gourd", "సొరకాయ", "लौकी", models.CategoryVegetable, 35},
	{"Ridge Gourd", "బీరకాయ", "तोरई", models.CategoryVegetable, 40},
	{"Bitter Gourd", "కాకరకాయ", "करेला", models.CategoryVegetable, 65},
	{"Drumstick", "మునగకాయ", "सहजन", models.CategoryVegetable, 90},
	{"Cucumber", "దోసకాయ", "खीरा", models.CategoryVegetable, 30},
	{"Pumpkin", "గుమ్మడికాయ", "कद्दू", models.CategoryVegetable, 30},
	{"Spinach", "పాలకూర", "पालक", models.CategoryLeafy, 40},
	{"Methi", "మెంతికూర", "मेथी", models.CategoryLeafy, 60},
	{"Coriander", "కొత్తిమీర", "धनिया", models.CategoryLeafy, 100},
	{"Curry Leaves", "కరివేపాకు", "करी पत्ता", models.CategoryLeafy, 150},
	{"Ginger", "అల్లం", "अदरक", models.CategorySpice, 180},
	{"Garlic", "వెల్లుల్లి", "लहसुन", models.CategorySpice, 200},
	{"Lemon", "నిమ్మకాయ", "नींबू", models.CategoryFruit, 120},
	{"Coconut", "కొబ్బరి", "नारियल", models.CategoryFruit, 25},
	{"Banana", "అరటిపళ్ళు", "केला", models.CategoryFruit, 50},
}

func main() {
	historyDays := flag.Int("history", 0, "also generate N days of synthetic price history")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	appConfig, err := config.LoadConfig("config/bazaarsetu.yaml")
	if err != nil {
		log.Printf("Warning: %v. Using defaults.", err)
		appConfig = config.DefaultConfig()
	}

	var db *database.GormDB
	if appConfig.Database.Type == "postgres" {
		db, err = database.NewPostgres(appConfig.Database.Postgres)
	} else {
		db, err = database.NewMySQL(appConfig.Database.MySQL)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	if err := seedCatalog(db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	if *historyDays > 0 {
		if err := seedHistory(db, *historyDays); err != nil {
			log.Fatalf("Failed to seed price history: %v", err)
		}
	}

	log.Println("Seeding complete")
}

func seedCatalog(db *database.GormDB) error {
	gdb := db.DB()

	stateIDs := make(map[string]int)
	for _, seed := range stateSeeds {
		state := seed
		if err := gdb.Where("code = ?", state.Code).FirstOrCreate(&state).Error; err != nil {
			return err
		}
		stateIDs[state.Code] = state.ID
	}

	for _, seed := range marketSeeds {
		lat, lon := seed.lat, seed.lon
		market := models.Market{
			Name:       seed.name,
			NameTelugu: seed.nameTelugu,
			NameHindi:  seed.nameHindi,
			StateID:    stateIDs[seed.stateCode],
			District:   seed.district,
			Latitude:   &lat,
			Longitude:  &lon,
			IsActive:   true,
		}
		if err := gdb.Where("name = ?", market.Name).FirstOrCreate(&market).Error; err != nil {
			return err
		}
	}

	for _, seed := range commoditySeeds {
		commodity := models.Commodity{
			Name:       seed.name,
			NameTelugu: seed.nameTelugu,
			NameHindi:  seed.nameHindi,
			Category:   seed.category,
			Unit:       "kg",
		}
		if err := gdb.Where("name = ?", commodity.Name).FirstOrCreate(&commodity).Error; err != nil {
			return err
		}
	}

	// Demo user for alert testing
	phone := "+919000000001"
	user := models.User{Phone: &phone, PreferredLanguage: "te", PushEnabled: true}
	if err := gdb.Where("phone = ?", phone).FirstOrCreate(&user).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d states, %d markets, %d commodities", len(stateSeeds), len(marketSeeds), len(commoditySeeds))
	return nil
}

// seedHistory generates a random walk of prices per (market, commodity) for
// the past N days. Each market reports roughly 80% of commodities per day,
// mimicking real mandi reporting gaps.
func seedHistory(db *database.GormDB, days int) error {
	markets, err := db.AllMarkets()
	if err != nil {
		return err
	}
	commodities, err := db.AllCommodities()
	if err != nil {
		return err
	}

	basePrices := make(map[string]float64, len(commoditySeeds))
	for _, seed := range commoditySeeds {
		basePrices[strings.ToLower(seed.name)] = seed.basePrice
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	var batch []models.Price

	for offset := days; offset >= 0; offset-- {
		date := now.AddDate(0, 0, -offset)
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

		for _, market := range markets {
			for _, commodity := range commodities {
				if rng.Float64() > 0.8 {
					continue
				}

				base := basePrices[strings.ToLower(commodity.Name)]
				if base == 0 {
					base = 50
				}
				// Drift within +-30% of base, day to day
				modal := base * (0.7 + rng.Float64()*0.6)
				batch = append(batch, models.Price{
					MarketID:    market.ID,
					CommodityID: commodity.ID,
					MinPrice:    modal * 0.8,
					MaxPrice:    modal * 1.2,
					ModalPrice:  modal,
					PriceDate:   day,
					FetchedAt:   now,
					Source:      "seed_data",
				})
			}
		}
	}

	if err := db.InsertPrices(batch); err != nil {
		return err
	}
	log.Printf("Seeded %d price rows over %d days", len(batch), days)
	return nil
}
