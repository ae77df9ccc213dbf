package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Buyers() BuyerRepository
	Courses() CourseRepository
	Purchases() PurchaseRepository
}
