package main

import (
	"os"

	"go.uber.org/zap"

	"metabotwin/internal/dataset"
	"metabotwin/internal/forest"
	"metabotwin/internal/platform/logger"
)

func main() {
	log, err := logger.New(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "console"), "metabotwin-train")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dataPath := getEnv("DATA_PATH", "Data/diabetes.csv")
	modelPath := getEnv("MODEL_PATH", "Models/twin_brain.gob")

	if _, err := os.Stat(dataPath); err != nil {
		log.Fatal("could not find dataset, please make sure diabetes.csv is inside the Data folder",
			zap.String("path", dataPath), zap.Error(err))
	}

	log.Info("loading data", zap.String("path", dataPath))
	table, err := dataset.Load(dataPath)
	if err != nil {
		log.Fatal("failed to load dataset", zap.Error(err))
	}

	log.Info("cleaning data", zap.Int("rows", table.Len()))
	table.Impute()

	train, test := dataset.Split(table, 0.2, 42)

	log.Info("training model", zap.Int("train_rows", train.Len()), zap.Int("test_rows", test.Len()))
	model, err := forest.Fit(train.Features, train.Labels, forest.DefaultConfig())
	if err != nil {
		log.Fatal("model training failed", zap.Error(err))
	}

	acc := model.Accuracy(test.Features, test.Labels)
	log.Info("model trained", zap.Float64("holdout_accuracy", acc))

	if err := forest.Save(model, modelPath); err != nil {
		log.Fatal("failed to save model", zap.Error(err))
	}
	log.Info("model saved", zap.String("path", modelPath))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
