package domain

//go:generate mockgen -source=train_lookup.go -destination=train_lookup_mock.go -package=domain

type TrainLookup interface {
	GetByNumber(trainNo string) (Train, bool)
}
