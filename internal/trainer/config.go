package trainer

// DefaultBaseModel is the causal LM the adapters are tuned on top of.
const DefaultBaseModel = "meta-llama/Meta-Llama-3-8B-Instruct"

// LoraConfig describes the low-rank adapter attached during fine-tuning.
type LoraConfig struct {
	R       int     `json:"rank"`
	Alpha   int     `json:"alpha"`
	Dropout float64 `json:"dropout"`
}

// SFTConfig carries the supervised fine-tuning hyperparameters the trainer
// service applies verbatim.
type SFTConfig struct {
	TextField                 string  `json:"text_field"`
	MaxSeqLength              int     `json:"max_seq_length"`
	PerDeviceTrainBatchSize   int     `json:"per_device_train_batch_size"`
	GradientAccumulationSteps int     `json:"gradient_accumulation_steps"`
	Optim                     string  `json:"optim"`
	SaveSteps                 int     `json:"save_steps"`
	LoggingSteps              int     `json:"logging_steps"`
	LearningRate              float64 `json:"learning_rate"`
	MaxGradNorm               float64 `json:"max_grad_norm"`
	MaxSteps                  int     `json:"max_steps"`
	WarmupRatio               float64 `json:"warmup_ratio"`
	LRSchedulerType           string  `json:"lr_scheduler_type"`
	FP16                      bool    `json:"fp16"`
	GroupByLength             bool    `json:"group_by_length"`
	FourBitQuantization       bool    `json:"load_in_4bit"`
	FourBitQuantType          string  `json:"bnb_4bit_quant_type"`
}

// DefaultLora returns the adapter configuration used for character models.
func DefaultLora() LoraConfig {
	return LoraConfig{R: 64, Alpha: 16, Dropout: 0.1}
}

// DefaultSFT returns the training arguments used for character models.
func DefaultSFT(textField string) SFTConfig {
	return SFTConfig{
		TextField:                 textField,
		MaxSeqLength:              512,
		PerDeviceTrainBatchSize:   1,
		GradientAccumulationSteps: 1,
		Optim:                     "paged_adamw_32bit",
		SaveSteps:                 200,
		LoggingSteps:              10,
		LearningRate:              2e-4,
		MaxGradNorm:               0.3,
		MaxSteps:                  300,
		WarmupRatio:               0.3,
		LRSchedulerType:           "constant",
		FP16:                      true,
		GroupByLength:             true,
		FourBitQuantization:       true,
		FourBitQuantType:          "nf4",
	}
}
