// Package commands defines the squeakctl CLI, an operator tool that talks to
// the squeaknode admin gateway directly, without going through squeakweb.
//
// Commands
//
//   - timeline        Print the newest squeaks of followed profiles
//   - search          Search squeak contents
//   - squeak          Show one squeak
//   - like, unlike    Change the like state of a squeak
//   - make            Sign a new squeak with a signing profile
//   - profiles        List, follow and unfollow profiles
//   - peers           List saved and connected peers, connect and disconnect
//   - payments        Payment summary and history
//   - sell-price      Show, set or clear the sell price
//   - network         Show the node's network and external address
//
// The gateway location comes from the same GATEWAY_* variables squeakweb
// reads, overridable with --host, --port or --url.
package commands
