package rpc

// Gateway endpoint paths.
const (
	EndpointGetNetwork           = "getnetwork"
	EndpointGetExternalAddress   = "getexternaladdress"
	EndpointGetDefaultPeerPort   = "getdefaultpeerport"
	EndpointGetSellPrice         = "getsellprice"
	EndpointSetSellPrice         = "setsellprice"
	EndpointClearSellPrice       = "clearsellprice"
	EndpointLogout               = "logout"
	EndpointReprocessReceived    = "reprocessreceivedpayments"
	EndpointGetTwitterAccounts   = "gettwitteraccounts"
	EndpointAddTwitterAccount    = "addtwitteraccount"
	EndpointDeleteTwitterAccount = "deletetwitteraccount"

	EndpointGetTimelineSqueaks  = "gettimelinesqueakdisplays"
	EndpointGetSqueak           = "getsqueakdisplay"
	EndpointGetAncestorSqueaks  = "getancestorsqueakdisplays"
	EndpointGetReplySqueaks     = "getreplysqueakdisplays"
	EndpointGetPubkeySqueaks    = "getpubkeysqueakdisplays"
	EndpointGetSearchSqueaks    = "getsearchsqueakdisplays"
	EndpointGetLikedSqueaks     = "getlikedsqueakdisplays"
	EndpointLikeSqueak          = "likesqueak"
	EndpointUnlikeSqueak        = "unlikesqueak"
	EndpointDeleteSqueak        = "deletesqueak"
	EndpointMakeSqueak          = "makesqueakrequest"
	EndpointMakeResqueak        = "makeresqueak"
	EndpointDecryptSqueak       = "decryptsqueak"
	EndpointGetBuyOffers        = "getbuyoffers"
	EndpointGetBuyOffer         = "getbuyoffer"
	EndpointPayOffer            = "payoffer"
	EndpointDownloadSqueak      = "downloadsqueak"
	EndpointDownloadSecretKey   = "downloadsqueaksecretkey"
	EndpointDownloadOffers      = "downloadoffers"
	EndpointDownloadReplies     = "downloadreplies"
	EndpointDownloadPubkeyItems = "downloadaddresssqueaks"

	EndpointGetProfiles          = "getprofiles"
	EndpointGetSigningProfiles   = "getsigningprofiles"
	EndpointGetContactProfiles   = "getcontactprofiles"
	EndpointGetProfile           = "getsqueakprofile"
	EndpointGetProfileByPubkey   = "getsqueakprofilebypubkey"
	EndpointSetProfileFollowing  = "setsqueakprofilefollowing"
	EndpointRenameProfile        = "renamesqueakprofile"
	EndpointSetProfileImage      = "setsqueakprofileimage"
	EndpointClearProfileImage    = "clearsqueakprofileimage"
	EndpointDeleteProfile        = "deleteprofile"
	EndpointGetProfilePrivateKey = "getsqueakprofileprivatekey"
	EndpointCreateSigningProfile = "createsigningprofile"
	EndpointImportSigningProfile = "importsigningprofile"
	EndpointCreateContactProfile = "createcontactprofile"

	EndpointGetPeer             = "getpeer"
	EndpointGetPeerByAddress    = "getpeerbyaddress"
	EndpointGetPeers            = "getpeers"
	EndpointGetConnectedPeers   = "getconnectedpeers"
	EndpointConnectPeer         = "connectpeer"
	EndpointDisconnectPeer      = "disconnectpeer"
	EndpointCreatePeer          = "createpeer"
	EndpointDeletePeer          = "deletepeer"
	EndpointRenamePeer          = "renamepeer"
	EndpointSetPeerAutoconnect  = "setpeerautoconnect"
	EndpointSetPeerShareForFree = "setpeershareforfree"

	EndpointGetPaymentSummary            = "getpaymentsummary"
	EndpointGetPaymentSummaryForSqueak   = "getpaymentsummaryforsqueak"
	EndpointGetPaymentSummaryForPubkey   = "getpaymentsummaryforpubkey"
	EndpointGetPaymentSummaryForPeer     = "getpaymentsummaryforpeer"
	EndpointGetSentPayments              = "getsentpayments"
	EndpointGetSentPaymentsForSqueak     = "getsentpaymentsforsqueak"
	EndpointGetSentPaymentsForPubkey     = "getsentpaymentsforpubkey"
	EndpointGetSentPaymentsForPeer       = "getsentpaymentsforpeer"
	EndpointGetReceivedPayments          = "getreceivedpayments"
	EndpointGetReceivedPaymentsForSqueak = "getreceivedpaymentsforsqueak"
	EndpointGetReceivedPaymentsForPubkey = "getreceivedpaymentsforpubkey"
	EndpointGetReceivedPaymentsForPeer   = "getreceivedpaymentsforpeer"
)
