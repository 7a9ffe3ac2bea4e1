package enums

import "fmt"

// NotificationType is persisted by name in the notifications.type column.
type NotificationType string

const (
	NotificationTypeChatMessage    NotificationType = "CHAT_MESSAGE"
	NotificationTypeSystem         NotificationType = "SYSTEM"
	NotificationTypeOrderStatus    NotificationType = "ORDER_STATUS"
	NotificationTypePayment        NotificationType = "PAYMENT"
	NotificationTypeSupportRequest NotificationType = "SUPPORT_REQUEST"
	NotificationTypeNewOrder       NotificationType = "NEW_ORDER"
	NotificationTypeCartActivity   NotificationType = "CART_ACTIVITY"
	NotificationTypeAbandonedCart  NotificationType = "ABANDONED_CART"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeChatMessage,
	NotificationTypeSystem,
	NotificationTypeOrderStatus,
	NotificationTypePayment,
	NotificationTypeSupportRequest,
	NotificationTypeNewOrder,
	NotificationTypeCartActivity,
	NotificationTypeAbandonedCart,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
