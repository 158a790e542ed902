package usecase

import (
	"io"
	"log/slog"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var (
	blackTea = model.Drink{
		ID:          "recTea",
		Name:        "紅茶",
		Category:    model.CategoryClassic,
		MediumPrice: 30,
		LargePrice:  40,
		ImageURL:    "http://img/tea.png",
	}
	yuzu = model.Drink{
		ID:          "recYuzu",
		Name:        "柚子青",
		Category:    model.CategorySeasonal,
		MediumPrice: 55,
		LargePrice:  70,
	}
	pearlMilk = model.Drink{
		ID:          "recPearl",
		Name:        "珍珠奶茶",
		Category:    model.CategoryMilkTea,
		MediumPrice: 50,
		LargePrice:  60,
	}
)

func sampleDrinks() []model.Drink {
	return []model.Drink{blackTea, yuzu, pearlMilk}
}
