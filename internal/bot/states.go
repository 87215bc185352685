package bot

// Dialog steps, stored per chat in Redis.
const (
	StepVariant   = "variant"
	StepBeanCount = "bean_count"
	StepFolds     = "folds"
	StepBasePrice = "base_price"
	StepUSDToBRL  = "usd_brl"
	StepEURToUSD  = "eur_usd"
	StepEURToBRL  = "eur_brl"
	StepDone      = "done"
)
