// Package navigation swaps page content in place of full page loads.
//
// A Controller turns link clicks, history moves and programmatic calls into fetches of partial content,
// then applies the result to a Document: history, outlet markup, scroll offset, active link,
// and finally scripts and a navigation:change Event.
// The browser side is reached only through the History, Document and Fetcher interfaces.
package navigation
