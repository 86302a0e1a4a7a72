package cmd

import (
	"flag"

	"github.com/etnz/factorlab"
	"github.com/etnz/factorlab/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog/log"
)

// tables are the files that can be loaded as a return table.
var tables = predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"))

// flagPredictors predicts values of flags by name, other flags accept anything.
var flagPredictors = map[string]complete.Predictor{
	"a":            complete.PredictFunc(predictAssets),
	"factors-file": tables,
	"returns-file": tables,
	"scenario":     predict.Files("*.json"),
	"currency":     predict.Set{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD"},
	"log-level":    predict.Set{"debug", "info", "warn", "error"},
}

// Completion returns the shell completion of the application, global flags are declared in f.
func Completion(f *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(f),
	}
	for _, cmd := range Commands {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictors(fs)}
		if cmd.Name() == "topic" {
			sub.Args = complete.PredictFunc(predictTopics)
		}
		c.Sub[cmd.Name()] = sub
	}
	return c
}

func predictors(f *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[fl.Name] = nil
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			res[fl.Name] = p
			return
		}
		res[fl.Name] = predict.Something
	})
	return res
}

// predictAssets returns the assets of the configured return table.
func predictAssets(prefix string) []string {
	t, err := factorlab.LoadTable(config.ReturnsFile)
	if err != nil {
		log.Debug().Err(err).Msg("cannot complete assets")
		return nil
	}
	return t.Columns()
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, docs.All)
}
