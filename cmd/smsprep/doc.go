// Command smsprep normalizes a labeled SMS collection for classification.
//
//	smsprep -i SMSSpamCollection -o sms_prepped.csv
//
// The input holds tab-separated (label, text) rows without a header. The
// output holds comma-separated (text, class_attribute) rows with a header.
// The try and rules subcommands inspect the rewrite rules.
package main
