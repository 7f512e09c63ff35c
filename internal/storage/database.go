package storage

import (
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, cardsFromConfig []game.PlayerCard) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.PlayerCard{}, &game.Match{}, &game.User{}); err != nil {
		return nil, err
	}

	seedDefaultCards(db, cardsFromConfig)
	return db, nil
}

// seedDefaultCards inserts the configured card catalog on first start.
// The config stays the source of truth for card stats; reseeding is only
// needed when the catalog table is empty.
func seedDefaultCards(db *gorm.DB, cardsFromConfig []game.PlayerCard) {
	var count int64
	db.Model(&game.PlayerCard{}).Count(&count)
	if count > 0 {
		return
	}
	if len(cardsFromConfig) == 0 {
		return
	}
	cards := make([]game.PlayerCard, len(cardsFromConfig))
	copy(cards, cardsFromConfig)
	if err := db.Create(&cards).Error; err != nil {
		logging.Error("failed to seed card catalog", err, logging.Fields{"cards": len(cards)})
		return
	}
	logging.Info("card catalog seeded", logging.Fields{"cards": len(cards)})
}
