package notify

import (
	"fmt"
	"strings"
)

// OrderConfirmation is the customer-facing mail sent once an in-store-payment
// order is committed, or once an online payment is captured.
func OrderConfirmation(to, fullName, orderID string, total float64, paymentMethod, shippingAddress string) Message {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #2e86de;">Thank you for your order, %s!</h2>
  <p>We have received your order and are preparing it for shipment.</p>
  <table style="width: 100%%; border-collapse: collapse; margin-top: 20px;">
    <tr style="background-color: #f6f6f6;"><td style="padding: 10px;">Order ID:</td><td style="padding: 10px;"><strong>%s</strong></td></tr>
    <tr><td style="padding: 10px;">Total Amount:</td><td style="padding: 10px;"><strong>$%.2f</strong></td></tr>
    <tr style="background-color: #f6f6f6;"><td style="padding: 10px;">Payment Method:</td><td style="padding: 10px;">%s</td></tr>
    <tr><td style="padding: 10px;">Shipping Address:</td><td style="padding: 10px;">%s</td></tr>
  </table>
  <p style="margin-top: 20px;">We'll notify you once it's shipped. If you have questions, just reply to this email.</p>
  <p style="color: #999; font-size: 12px; margin-top: 40px;">SuperMart Team</p>
</div>`,
		fullName, orderID, total, strings.ReplaceAll(paymentMethod, "-", " "), shippingAddress)

	return Message{
		To:      to,
		Subject: "Your Order Confirmation - SuperMart",
		HTML:    html,
	}
}

// AdminOrderAlert tells the back office a new order landed.
func AdminOrderAlert(adminEmail, fullName, customerEmail, orderID, paymentMethod string, total float64) Message {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #e67e22;">New Order Placed</h2>
  <table style="width: 100%%; border-collapse: collapse; margin-top: 20px;">
    <tr style="background-color: #f9f9f9;"><td style="padding: 10px;">Customer:</td><td style="padding: 10px;"><strong>%s</strong> (%s)</td></tr>
    <tr><td style="padding: 10px;">Order ID:</td><td style="padding: 10px;">%s</td></tr>
    <tr style="background-color: #f9f9f9;"><td style="padding: 10px;">Payment Method:</td><td style="padding: 10px;">%s</td></tr>
    <tr><td style="padding: 10px;">Total Amount:</td><td style="padding: 10px;"><strong>$%.2f</strong></td></tr>
  </table>
  <p style="margin-top: 20px;">Check the dashboard for more order details.</p>
  <p style="color: #aaa; font-size: 12px; margin-top: 40px;">SuperMart Order Notification</p>
</div>`,
		fullName, customerEmail, orderID, strings.ReplaceAll(paymentMethod, "-", " "), total)

	return Message{
		To:      adminEmail,
		Subject: "New Order Received - SuperMart",
		HTML:    html,
	}
}

// PurchaseOrderMail asks a supplier to restock a product.
func PurchaseOrderMail(to, supplierName, productName string, quantity int, poNumber string) Message {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #2e86de;">Purchase Order %s</h2>
  <p>Hello %s,</p>
  <p>Please supply <strong>%d</strong> units of <strong>%s</strong> at your earliest convenience.</p>
  <p style="color: #999; font-size: 12px; margin-top: 40px;">SuperMart Procurement</p>
</div>`,
		poNumber, supplierName, quantity, productName)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Purchase Order %s - SuperMart", poNumber),
		HTML:    html,
	}
}
