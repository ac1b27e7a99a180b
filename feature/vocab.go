package feature

// Closed vocabularies fixed at training time. Order matters: one-hot columns
// are emitted drop-first, so the first entry of each list has no column.
var (
	Genders = []string{"Male", "Female"}

	Occupations = []string{
		"Accountant",
		"Doctor",
		"Engineer",
		"Lawyer",
		"Manager",
		"Nurse",
		"Sales Representative",
		"Salesperson",
		"Scientist",
		"Software Engineer",
		"Teacher",
	}

	BMICategories = []string{
		"Normal",
		"Normal Weight",
		"Obese",
		"Overweight",
	}
)
