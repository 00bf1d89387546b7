package models

// Snapshot is a consistent read of every record the forecast needs
type Snapshot struct {
	Settings     Settings
	Movements    []OneTimeMovement
	Incomes      []RecurringIncome
	Payments     []RecurringPayment
	Installments []InstallmentPurchase
	Cards        []CreditCard
	CardCharges  []CardCharge
}
