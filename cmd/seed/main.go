package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carlot/internal/config"
	"carlot/internal/db"
	"carlot/internal/model"
)

// Seed data: the familiar starter lot. Classifications and vehicles are
// created pre-approved so the public site has content immediately; the sample
// accounts cover each role.
var classificationNames = []string{"Custom", "Sedan", "SUV", "Sport", "Truck"}

type seedVehicle struct {
	Classification string
	Make           string
	Model          string
	Year           int
	Description    string
	Image          string
	Thumbnail      string
	Price          string
	Miles          int
	Color          string
}

var seedVehicles = []seedVehicle{
	{"Custom", "Chevy", "Camaro", 2018, "If you want to look cool this is the car you need! This car has great performance at an affordable price.", "/images/vehicles/camaro.jpg", "/images/vehicles/camaro-tn.jpg", "25000.00", 101222, "Silver"},
	{"Custom", "Batmobile", "Custom", 2007, "Ever want to be a superhero? Now you can with the original Batmobile.", "/images/vehicles/batmobile.jpg", "/images/vehicles/batmobile-tn.jpg", "65000.00", 29887, "Black"},
	{"Sedan", "Ford", "Model T", 1921, "The original horseless carriage. So easy to drive even your grandmother can do it.", "/images/vehicles/model-t.jpg", "/images/vehicles/model-t-tn.jpg", "30000.00", 26357, "Black"},
	{"Sedan", "Cadillac", "Escalade", 2019, "Luxury and presence in one package.", "/images/vehicles/escalade.jpg", "/images/vehicles/escalade-tn.jpg", "75195.00", 41958, "Black"},
	{"SUV", "Jeep", "Wrangler", 2019, "Go anywhere the road does not. Low mileage and ready for adventure.", "/images/vehicles/wrangler.jpg", "/images/vehicles/wrangler-tn.jpg", "28045.00", 41205, "Yellow"},
	{"Sport", "Lamborghini", "Adventador", 2016, "This V-12 engine packs a punch at a cool 700 horsepower.", "/images/vehicles/adventador.jpg", "/images/vehicles/adventador-tn.jpg", "417650.00", 71003, "Blue"},
	{"Truck", "GM", "Hummer", 2016, "Do you have 6 kids and like to go offroading? The Hummer gives you the small interiors with an engine to get you out of any muddy or rocky situation.", "/images/vehicles/hummer.jpg", "/images/vehicles/hummer-tn.jpg", "58800.00", 56564, "Yellow"},
	{"Truck", "Ford", "Crown Victoria", 2013, "After the police force got new cars, these Crown Victorias went up for sale. Still in great condition.", "/images/vehicles/crwn-vic.jpg", "/images/vehicles/crwn-vic-tn.jpg", "10000.00", 108247, "White"},
}

type seedAccount struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Type      model.AccountType
}

var seedAccounts = []seedAccount{
	{"Basic", "Client", "basic@example.com", "I@mABas1cCl!ent", model.TypeClient},
	{"Happy", "Employee", "happy@example.com", "I@mAnEmpl0y33!", model.TypeEmployee},
	{"Manager", "User", "manager@example.com", "I@mAnAdm!n1strator", model.TypeAdmin},
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Account{}, &model.Classification{}, &model.Vehicle{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	classIDs, err := seedClassifications(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed classifications: %v", err)
	}
	log.Printf("Seeded %d classifications", len(classIDs))

	count, err := seedInventory(ctx, gormDB, classIDs)
	if err != nil {
		log.Fatalf("Failed to seed vehicles: %v", err)
	}
	log.Printf("Seeded %d vehicles", count)

	count, err = seedSampleAccounts(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}
	log.Printf("Seeded %d accounts", count)

	log.Println("Seed completed")
}

func seedClassifications(ctx context.Context, gormDB *gorm.DB) (map[string]uint, error) {
	ids := make(map[string]uint, len(classificationNames))
	for _, name := range classificationNames {
		var classification model.Classification
		err := gormDB.WithContext(ctx).Where("name = ?", name).First(&classification).Error
		if err == gorm.ErrRecordNotFound {
			classification = model.Classification{Name: name, Approved: true}
			if err := gormDB.WithContext(ctx).Create(&classification).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		ids[name] = classification.ID
	}
	return ids, nil
}

func seedInventory(ctx context.Context, gormDB *gorm.DB, classIDs map[string]uint) (int, error) {
	count := 0
	for _, sv := range seedVehicles {
		var existing int64
		err := gormDB.WithContext(ctx).Model(&model.Vehicle{}).
			Where("make = ? AND model = ? AND year = ?", sv.Make, sv.Model, sv.Year).
			Count(&existing).Error
		if err != nil {
			return count, err
		}
		if existing > 0 {
			continue
		}

		price, err := decimal.NewFromString(sv.Price)
		if err != nil {
			log.Printf("Skipping vehicle %s %s with invalid price: %s", sv.Make, sv.Model, sv.Price)
			continue
		}

		vehicle := model.Vehicle{
			ClassificationID: classIDs[sv.Classification],
			Make:             sv.Make,
			Model:            sv.Model,
			Year:             sv.Year,
			Description:      sv.Description,
			Image:            sv.Image,
			Thumbnail:        sv.Thumbnail,
			Price:            price,
			Miles:            sv.Miles,
			Color:            sv.Color,
			Approved:         true,
		}
		if err := gormDB.WithContext(ctx).Create(&vehicle).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func seedSampleAccounts(ctx context.Context, gormDB *gorm.DB) (int, error) {
	count := 0
	for _, sa := range seedAccounts {
		var existing int64
		err := gormDB.WithContext(ctx).Model(&model.Account{}).
			Where("email = ?", sa.Email).
			Count(&existing).Error
		if err != nil {
			return count, err
		}
		if existing > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(sa.Password), 10)
		if err != nil {
			return count, err
		}

		account := model.Account{
			Firstname:    sa.Firstname,
			Lastname:     sa.Lastname,
			Email:        sa.Email,
			PasswordHash: string(hash),
			Type:         sa.Type,
		}
		if err := gormDB.WithContext(ctx).Create(&account).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
