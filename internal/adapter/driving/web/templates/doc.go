// Package templates holds the page shell shared by every HTML response.
package templates
