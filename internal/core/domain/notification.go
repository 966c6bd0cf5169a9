package domain

type NotificationKind string

const (
	KindAddFailed    NotificationKind = "add_failed"
	KindRemoveFailed NotificationKind = "remove_failed"
	KindOutOfStock   NotificationKind = "out_of_stock"
	KindUpdateFailed NotificationKind = "update_failed"
)

var notificationText = map[NotificationKind]string{
	KindAddFailed:    "Error adding product",
	KindRemoveFailed: "Error removing product",
	KindOutOfStock:   "Requested quantity is out of stock",
	KindUpdateFailed: "Error changing product quantity",
}

// Notification is the user-facing message produced by a failed cart operation.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	ProductID int              `json:"product_id"`
	Message   string           `json:"message"`
}

func NewNotification(kind NotificationKind, productID int) Notification {
	return Notification{
		Kind:      kind,
		ProductID: productID,
		Message:   notificationText[kind],
	}
}
