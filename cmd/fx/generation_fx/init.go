// cmd/fx/generation_fx/init.go
package generation_fx

import (
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"smarttravel/internal/config"
	"smarttravel/pkg/utils"
)

var Module = fx.Provide(ProvideGenerationClient)

// ProvideGenerationClient creates the text generation client selected by
// GENERATION_PROVIDER. A missing API key is not fatal: every request is then
// served with the fallback itinerary.
func ProvideGenerationClient(lc fx.Lifecycle, cfg config.AppConfig, log *zap.Logger) (utils.GenerationClientInterface, error) {
	genCfg := cfg.Generation()
	if genCfg.APIKey == "" {
		log.Warn("generation API key missing, itineraries will use the fallback", zap.String("provider", genCfg.Provider))
	} else {
		log.Info("initializing generation client", zap.String("provider", genCfg.Provider), zap.String("model", genCfg.Model))
	}

	client, err := utils.NewGenerationClient(genCfg)
	if err != nil {
		return nil, err
	}

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.StopHook(closer.Close))
	}
	return client, nil
}
